package pdu

import (
	"fmt"
	"strconv"
	"strings"
)

// ContentURI is the base URI of stored MMS messages.
const ContentURI = "content://mms"

// URIFor returns the URI addressing the stored PDU with the given id.
func URIFor(id int64) string {
	return ContentURI + "/" + strconv.FormatInt(id, 10)
}

// IDFromURI extracts the PDU id from a URI built by URIFor.
func IDFromURI(uri string) (int64, error) {
	rest, ok := strings.CutPrefix(uri, ContentURI+"/")
	if !ok {
		return 0, fmt.Errorf("not an mms uri: %q", uri)
	}
	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid mms uri: %q", uri)
	}
	return id, nil
}
