package qr

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type Action string

const (
	ActionCheckIn  Action = "check_in"
	ActionCheckOut Action = "check_out"
)

func (a Action) String() string {
	return string(a)
}

// DefaultImageSize is the PNG edge length in pixels.
const DefaultImageSize = 256

// ImageRequest describes a QR image to render.
type ImageRequest struct {
	BaseURL string
	CodeID  uuid.UUID
	Size    int
}

// Content is the URL staff scanners open for the code.
func (r *ImageRequest) Content() string {
	return CheckInURL(r.BaseURL, r.CodeID)
}

func (r *ImageRequest) Validate() error {
	if r.CodeID == uuid.Nil {
		return fmt.Errorf("code ID is required")
	}
	if r.Size < 0 || r.Size > 2048 {
		return fmt.Errorf("invalid image size: %d", r.Size)
	}
	return nil
}

// CheckInURL builds <base>/dashboard/check-in/<id>.
func CheckInURL(base string, id uuid.UUID) string {
	return strings.TrimRight(base, "/") + "/dashboard/check-in/" + id.String()
}
