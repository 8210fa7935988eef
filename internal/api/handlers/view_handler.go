package handlers

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/welldanyogia/webrana-msgview/internal/api/response"
	"github.com/welldanyogia/webrana-msgview/internal/message"
	"github.com/welldanyogia/webrana-msgview/internal/services"
)

// ViewHandler serves message views
type ViewHandler struct {
	views services.ViewService
}

// NewViewHandler creates a new ViewHandler
func NewViewHandler(views services.ViewService) *ViewHandler {
	return &ViewHandler{views: views}
}

// MmsResponse is the MMS part of a view
type MmsResponse struct {
	MessageType    int    `json:"message_type"`
	AttachmentType string `json:"attachment_type"`
	Subject        string `json:"subject,omitempty"`
	Slides         int    `json:"slides"`
	Size           int    `json:"size"`
	ErrorType      int    `json:"error_type"`
}

// ViewResponse is the JSON form of a message view
type ViewResponse struct {
	Kind                    string       `json:"kind"`
	ID                      int64        `json:"id"`
	URI                     string       `json:"uri"`
	Box                     int          `json:"box"`
	Address                 string       `json:"address"`
	Contact                 string       `json:"contact"`
	Body                    string       `json:"body"`
	Timestamp               string       `json:"timestamp,omitempty"`
	Highlight               string       `json:"highlight,omitempty"`
	Locked                  bool         `json:"locked"`
	DeliveryReportRequested bool         `json:"delivery_report_requested"`
	ReadReportRequested     bool         `json:"read_report_requested"`
	Downloaded              bool         `json:"downloaded"`
	Outgoing                bool         `json:"outgoing"`
	Mms                     *MmsResponse `json:"mms,omitempty"`
}

// NewViewResponse converts a view for the wire
func NewViewResponse(v *message.View) ViewResponse {
	resp := ViewResponse{
		Kind:                    v.Kind().String(),
		ID:                      v.ID(),
		URI:                     v.URI(),
		Box:                     v.BoxID(),
		Address:                 v.Address(),
		Contact:                 v.Contact(),
		Body:                    v.Body(),
		Timestamp:               v.Timestamp(),
		Highlight:               v.Highlight(),
		Locked:                  v.Locked(),
		DeliveryReportRequested: v.DeliveryReportRequested(),
		ReadReportRequested:     v.ReadReportRequested(),
		Downloaded:              v.IsDownloaded(),
		Outgoing:                v.IsOutgoingMessage(),
	}
	if d := v.Mms(); d != nil {
		mms := &MmsResponse{
			MessageType:    d.MessageType,
			AttachmentType: d.AttachmentType.String(),
			Subject:        d.Subject,
			Size:           d.Size,
			ErrorType:      d.ErrorType,
		}
		if d.Slideshow != nil {
			mms.Slides = d.Slideshow.Len()
		}
		resp.Mms = mms
	}
	return resp
}

// Get handles GET /api/messages/:kind/:id
func (h *ViewHandler) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return response.BadRequest(c, "invalid message ID")
	}

	view, err := h.views.Get(c.Request().Context(), c.Param("kind"), id, c.QueryParam("highlight"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, NewViewResponse(view))
}

// ListThread handles GET /api/threads/:id/messages
func (h *ViewHandler) ListThread(c echo.Context) error {
	threadID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || threadID <= 0 {
		return response.BadRequest(c, "invalid thread ID")
	}

	views, err := h.views.ListThread(c.Request().Context(), threadID, c.QueryParam("highlight"))
	if err != nil {
		return response.Error(c, err)
	}

	out := make([]ViewResponse, 0, len(views))
	for _, v := range views {
		out = append(out, NewViewResponse(v))
	}
	return response.Success(c, out)
}
