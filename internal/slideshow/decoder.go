package slideshow

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"log/slog"
	"mime"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jhillyerd/enmime/mediatype"
	"github.com/welldanyogia/webrana-msgview/internal/pdu"
)

const contentTypeSMIL = "application/smil"

// DRM wrapped parts hide their real type; only the SMIL element or the file
// name says what they are.
const (
	contentTypeDRMMessage = "application/vnd.oma.drm.message"
	contentTypeDRMContent = "application/vnd.oma.drm.content"
)

type smilDocument struct {
	Body struct {
		Pars []smilPar `xml:"par"`
	} `xml:"body"`
}

type smilPar struct {
	Dur   string      `xml:"dur,attr"`
	Media []smilMedia `xml:",any"`
}

type smilMedia struct {
	XMLName xml.Name
	Src     string `xml:"src,attr"`
}

type slot int

const (
	slotNone slot = iota
	slotText
	slotImage
	slotAudio
	slotVideo
)

// Decoder builds slideshows from PDU bodies.
type Decoder struct {
	logger *slog.Logger
}

// NewDecoder creates a Decoder. A nil logger discards diagnostics.
func NewDecoder(logger *slog.Logger) *Decoder {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Decoder{logger: logger}
}

// Decode lays out body as slides. A SMIL part drives the layout when it
// parses; otherwise parts are placed in order, opening a new slide whenever
// the current one already holds media of the same kind.
func (d *Decoder) Decode(ctx context.Context, body *pdu.Body) (*Slideshow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if body == nil {
		return &Slideshow{}, nil
	}

	if smil := findSMIL(body); smil != nil {
		show, err := d.fromSMIL(body, smil)
		if err == nil {
			return show, nil
		}
		d.logger.Debug("falling back to default slide layout", "error", err)
	}
	return d.fromParts(body), nil
}

func (d *Decoder) fromSMIL(body *pdu.Body, smil *pdu.Part) (*Slideshow, error) {
	var doc smilDocument
	dec := xml.NewDecoder(bytes.NewReader(smil.Data))
	dec.Strict = false
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("invalid smil: %w", err)
	}
	if len(doc.Body.Pars) == 0 {
		return nil, fmt.Errorf("smil has no slides")
	}

	show := &Slideshow{}
	for _, par := range doc.Body.Pars {
		slide := &Slide{Duration: parseDuration(par.Dur)}
		for _, ref := range par.Media {
			part := body.Resolve(ref.Src)
			if part == nil {
				d.logger.Debug("smil references a missing part", "src", ref.Src)
				continue
			}
			s := slotForElement(ref.XMLName.Local, part)
			if s == slotNone {
				continue
			}
			place(slide, s, newMedia(part, s, ref.Src))
		}
		show.Slides = append(show.Slides, slide)
	}
	return show, nil
}

func (d *Decoder) fromParts(body *pdu.Body) *Slideshow {
	show := &Slideshow{}
	slide := &Slide{}

	for _, part := range body.Parts {
		s := slotForType(effectiveType(part))
		if s == slotNone {
			d.logger.Debug("skipping part with unsupported type", "content_type", part.ContentType)
			continue
		}
		if occupied(slide, s) {
			show.Slides = append(show.Slides, slide)
			slide = &Slide{}
		}
		place(slide, s, newMedia(part, s, srcOf(part)))
	}

	if !slide.empty() {
		show.Slides = append(show.Slides, slide)
	}
	return show
}

// newMedia wraps part for a slide. Text that does not decode cleanly is
// shown with replacement characters.
func newMedia(part *pdu.Part, s slot, src string) *Media {
	m := &Media{
		ContentType:  baseType(part.ContentType),
		Src:          src,
		Size:         len(part.Data),
		DRMProtected: isDRM(part.ContentType),
	}
	if s == slotText && !m.DRMProtected {
		m.Text = pdu.DecodeLossy(part.Charset, part.Data)
	}
	return m
}

func findSMIL(body *pdu.Body) *pdu.Part {
	for _, p := range body.Parts {
		if baseType(p.ContentType) == contentTypeSMIL {
			return p
		}
	}
	return nil
}

func slotForElement(name string, part *pdu.Part) slot {
	switch strings.ToLower(name) {
	case "text":
		return slotText
	case "img":
		return slotImage
	case "audio":
		return slotAudio
	case "video":
		return slotVideo
	case "ref":
		return slotForType(effectiveType(part))
	default:
		return slotNone
	}
}

func slotForType(ct string) slot {
	switch {
	case ct == "text/plain" || ct == "text/html":
		return slotText
	case strings.HasPrefix(ct, "image/"):
		return slotImage
	case strings.HasPrefix(ct, "audio/"):
		return slotAudio
	case strings.HasPrefix(ct, "video/"):
		return slotVideo
	default:
		return slotNone
	}
}

// effectiveType is the part's media type, or for DRM parts the type implied
// by its file name.
func effectiveType(part *pdu.Part) string {
	ct := baseType(part.ContentType)
	if !isDRM(ct) {
		return ct
	}
	ext := strings.ToLower(filepath.Ext(srcOf(part)))
	if guess, ok := drmExtensions[ext]; ok {
		return guess
	}
	if guess := mime.TypeByExtension(ext); guess != "" {
		return baseType(guess)
	}
	return ct
}

// drmExtensions covers the handset formats the system mime table may lack.
var drmExtensions = map[string]string{
	".txt": "text/plain",
	".jpg": "image/jpeg",
	".gif": "image/gif",
	".png": "image/png",
	".amr": "audio/amr",
	".mp3": "audio/mpeg",
	".3gp": "video/3gpp",
	".mp4": "video/mp4",
}

func baseType(ct string) string {
	mtype, _, _, err := mediatype.Parse(ct)
	if err != nil || mtype == "" {
		return strings.ToLower(strings.TrimSpace(ct))
	}
	return strings.ToLower(mtype)
}

func isDRM(ct string) bool {
	ct = baseType(ct)
	return ct == contentTypeDRMMessage || ct == contentTypeDRMContent
}

func srcOf(part *pdu.Part) string {
	for _, s := range []string{part.ContentLocation, part.Filename, part.Name} {
		if s != "" {
			return s
		}
	}
	return part.ContentID
}

func occupied(slide *Slide, s slot) bool {
	switch s {
	case slotText:
		return slide.Text != nil
	case slotImage:
		return slide.Image != nil || slide.Video != nil
	case slotVideo:
		return slide.Video != nil || slide.Image != nil
	case slotAudio:
		return slide.Audio != nil
	}
	return false
}

func place(slide *Slide, s slot, m *Media) {
	switch s {
	case slotText:
		slide.Text = m
	case slotImage:
		slide.Image = m
	case slotAudio:
		slide.Audio = m
	case slotVideo:
		slide.Video = m
	}
}

// parseDuration reads SMIL clock values such as "5000ms" or "5s".
func parseDuration(dur string) int {
	dur = strings.TrimSpace(dur)
	switch {
	case dur == "":
		return 0
	case strings.HasSuffix(dur, "ms"):
		n, _ := strconv.Atoi(strings.TrimSuffix(dur, "ms"))
		return n
	case strings.HasSuffix(dur, "s"):
		f, _ := strconv.ParseFloat(strings.TrimSuffix(dur, "s"), 64)
		return int(f * 1000)
	default:
		n, _ := strconv.Atoi(dur)
		return n * 1000
	}
}
