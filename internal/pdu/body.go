package pdu

import "strings"

// Body is the ordered list of parts of a multimedia PDU.
type Body struct {
	Parts []*Part
}

// Part is one body part. Data is the decoded payload.
type Part struct {
	ContentType     string
	Charset         int
	Name            string
	Filename        string
	ContentID       string
	ContentLocation string
	Data            []byte
}

// AddPart appends a part.
func (b *Body) AddPart(p *Part) {
	b.Parts = append(b.Parts, p)
}

// PartsNum returns the number of parts.
func (b *Body) PartsNum() int {
	return len(b.Parts)
}

// PartByContentID finds a part by Content-ID, with or without angle brackets.
func (b *Body) PartByContentID(cid string) *Part {
	cid = strings.Trim(cid, "<>")
	for _, p := range b.Parts {
		if strings.Trim(p.ContentID, "<>") == cid {
			return p
		}
	}
	return nil
}

// PartByContentLocation finds a part by Content-Location.
func (b *Body) PartByContentLocation(loc string) *Part {
	for _, p := range b.Parts {
		if p.ContentLocation == loc {
			return p
		}
	}
	return nil
}

// PartByName finds a part by its name or filename parameter.
func (b *Body) PartByName(name string) *Part {
	for _, p := range b.Parts {
		if p.Name == name || p.Filename == name {
			return p
		}
	}
	return nil
}

// Resolve finds the part a SMIL src attribute refers to: "cid:" URLs by
// Content-ID, anything else by location, then by name.
func (b *Body) Resolve(src string) *Part {
	if strings.HasPrefix(src, "cid:") {
		return b.PartByContentID(strings.TrimPrefix(src, "cid:"))
	}
	if p := b.PartByContentLocation(src); p != nil {
		return p
	}
	return b.PartByName(src)
}
