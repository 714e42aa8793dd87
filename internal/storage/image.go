package storage

import (
	"bytes"
	"fmt"
	"io"

	"github.com/gabriel-vasile/mimetype"
)

var allowedImageTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

// SniffImage reads the whole upload, detects its type from the content and
// rejects anything that is not a supported image. The returned reader replays
// the full file.
func SniffImage(file io.Reader) (io.Reader, int64, string, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, 0, "", fmt.Errorf("ошибка чтения файла: %w", err)
	}

	mtype := mimetype.Detect(data)
	if !mimetype.EqualsAny(mtype.String(), allowedImageTypes...) {
		return nil, 0, "", fmt.Errorf("загруженный файл не является изображением: %s", mtype.String())
	}

	return bytes.NewReader(data), int64(len(data)), mtype.String(), nil
}
