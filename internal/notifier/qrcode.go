package notifier

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

const qrImageSize = 256

// EncodeAttendanceQR renders the attendance code as a PNG QR image.
func EncodeAttendanceQR(attendanceCode string) ([]byte, error) {
	png, err := qrcode.Encode(attendanceCode, qrcode.Medium, qrImageSize)
	if err != nil {
		return nil, fmt.Errorf("qrcode.Encode -> %w", err)
	}

	return png, nil
}
