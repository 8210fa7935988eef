// Package slideshow turns the parts of a multimedia PDU body into an ordered
// list of slides, the way a message list presents an MMS.
package slideshow

// AttachmentType classifies what a slideshow carries, for choosing an icon
// or thumbnail in a message list.
type AttachmentType int

const (
	AttachmentText AttachmentType = iota
	AttachmentImage
	AttachmentVideo
	AttachmentAudio
	AttachmentSlideshow
)

func (t AttachmentType) String() string {
	switch t {
	case AttachmentImage:
		return "image"
	case AttachmentVideo:
		return "video"
	case AttachmentAudio:
		return "audio"
	case AttachmentSlideshow:
		return "slideshow"
	default:
		return "text"
	}
}

// Media is one part placed on a slide.
type Media struct {
	ContentType string
	Src         string
	Size        int

	// DRMProtected parts keep their payload opaque; Text stays empty.
	DRMProtected bool
	Text         string
}

// Slide holds at most one media item of each kind.
type Slide struct {
	Text     *Media
	Image    *Media
	Audio    *Media
	Video    *Media
	Duration int // milliseconds, 0 when unspecified
}

func (s *Slide) HasText() bool  { return s.Text != nil }
func (s *Slide) HasImage() bool { return s.Image != nil }
func (s *Slide) HasAudio() bool { return s.Audio != nil }
func (s *Slide) HasVideo() bool { return s.Video != nil }

// Size is the total payload size of the slide's media.
func (s *Slide) Size() int {
	size := 0
	for _, m := range []*Media{s.Text, s.Image, s.Audio, s.Video} {
		if m != nil {
			size += m.Size
		}
	}
	return size
}

func (s *Slide) empty() bool {
	return s.Text == nil && s.Image == nil && s.Audio == nil && s.Video == nil
}

// Slideshow is the ordered list of slides of one message.
type Slideshow struct {
	Slides []*Slide
}

// Len returns the number of slides.
func (s *Slideshow) Len() int {
	return len(s.Slides)
}

// Get returns slide i, or nil when there is no such slide.
func (s *Slideshow) Get(i int) *Slide {
	if i < 0 || i >= len(s.Slides) {
		return nil
	}
	return s.Slides[i]
}

// CurrentMessageSize is the sum of all slide sizes.
func (s *Slideshow) CurrentMessageSize() int {
	size := 0
	for _, slide := range s.Slides {
		size += slide.Size()
	}
	return size
}

// AttachmentType classifies the slideshow. More than one slide is always a
// slideshow; a single slide is named after its richest media, with audio
// plus image counting as a slideshow.
func (s *Slideshow) AttachmentType() AttachmentType {
	if len(s.Slides) > 1 {
		return AttachmentSlideshow
	}
	if len(s.Slides) == 0 {
		return AttachmentText
	}

	slide := s.Slides[0]
	switch {
	case slide.HasVideo():
		return AttachmentVideo
	case slide.HasAudio() && slide.HasImage():
		return AttachmentSlideshow
	case slide.HasAudio():
		return AttachmentAudio
	case slide.HasImage():
		return AttachmentImage
	default:
		return AttachmentText
	}
}
