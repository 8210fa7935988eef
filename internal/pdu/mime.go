package pdu

import (
	"fmt"
	"io"
	"net/mail"
	"strings"
	"time"

	"github.com/jhillyerd/enmime"
)

// FromMIME reads an MMS delivered as a MIME message (an MM4 relay dump or an
// email gateway copy) and returns it as a retrieve-conf. The plain text body
// becomes the first part, followed by inline parts and attachments in the
// order they appear.
func FromMIME(r io.Reader) (*RetrieveConf, error) {
	env, err := enmime.ReadEnvelope(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse mime message: %w", err)
	}

	conf := &RetrieveConf{
		MessageID: strings.Trim(env.GetHeader("Message-Id"), "<>"),
	}
	conf.Body = &Body{}

	if from := senderAddress(env.GetHeader("From")); from != "" {
		conf.From = NewEncodedStringValue(from)
	}
	for _, to := range env.GetHeaderValues("To") {
		for _, addr := range strings.Split(to, ",") {
			if a := senderAddress(addr); a != "" {
				conf.To = append(conf.To, NewEncodedStringValue(a))
			}
		}
	}
	if subject := env.GetHeader("Subject"); subject != "" {
		conf.Subject = NewEncodedStringValue(subject)
	}

	conf.Date = time.Now().Unix()
	if d, err := mail.ParseDate(env.GetHeader("Date")); err == nil {
		conf.Date = d.Unix()
	}

	if env.Text != "" {
		conf.Body.AddPart(&Part{
			ContentType:     "text/plain",
			Charset:         CharsetUTF8,
			Name:            "text_0.txt",
			ContentLocation: "text_0.txt",
			Data:            []byte(env.Text),
		})
	}

	for _, group := range [][]*enmime.Part{env.Inlines, env.Attachments} {
		for _, att := range group {
			part := &Part{
				ContentType:     strings.ToLower(att.ContentType),
				Name:            att.FileName,
				Filename:        att.FileName,
				ContentID:       strings.Trim(att.ContentID, "<>"),
				ContentLocation: att.FileName,
				Data:            att.Content,
			}
			// enmime hands text parts over already converted to UTF-8
			if strings.HasPrefix(part.ContentType, "text/") {
				part.Charset = CharsetUTF8
			}
			conf.Body.AddPart(part)
		}
	}

	return conf, nil
}

// senderAddress extracts the address from a From or To header and strips
// the MM4 "/TYPE=PLMN" suffix and relay domain from phone numbers.
func senderAddress(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}

	addr := header
	if a, err := mail.ParseAddress(header); err == nil {
		addr = a.Address
	} else if i := strings.LastIndex(header, "<"); i >= 0 {
		addr = strings.TrimSuffix(header[i+1:], ">")
	}

	if i := strings.Index(strings.ToUpper(addr), "/TYPE="); i >= 0 {
		return addr[:i]
	}
	return addr
}
