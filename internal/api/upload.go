package api

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"

	"github.com/p6tools/p6view/internal/domain"
)

const (
	// UploadExt is the only accepted schedule file extension.
	UploadExt = ".xer"
	// MaxUploadBytes is the client-side size ceiling, matching the
	// server's 100 MB limit so oversize files never leave the machine.
	MaxUploadBytes = 100 << 20
)

// ValidateUpload checks extension and size before any network call.
// Violations return ErrValidation with an inline-displayable message.
func ValidateUpload(path string) error {
	if !strings.EqualFold(filepath.Ext(path), UploadExt) {
		return fmt.Errorf("%w: only %s files are allowed", ErrValidation, UploadExt)
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if info.Size() > MaxUploadBytes {
		return fmt.Errorf("%w: file too large: %.1fMB, maximum allowed: %.0fMB",
			ErrValidation,
			float64(info.Size())/1024/1024,
			float64(MaxUploadBytes)/1024/1024)
	}
	return nil
}

// UploadScheduleFile sends a P6 export as multipart form data and
// returns the schedule record created for it. The server parses the
// file synchronously; the call can take a while for big schedules, so
// the timeout here is generous.
func (c *httpClient) UploadScheduleFile(ctx context.Context, projectID int, path, scheduleName, description, createdBy string) (*domain.Schedule, error) {
	if err := ValidateUpload(path); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	defer f.Close()

	pr, pw := io.Pipe()
	form := multipart.NewWriter(pw)
	go func() {
		err := writeUploadForm(form, f, filepath.Base(path), scheduleName, description,
			domain.CoalesceStr(createdBy, c.cfg.CreatedBy))
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(form.Close())
	}()

	// Parsing a 100 MB export server-side dwarfs the normal request
	// timeout.
	uploadTimeout := 10 * time.Duration(c.cfg.TimeoutMs) * time.Millisecond
	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	u := fmt.Sprintf("%s/api/projects/%d/upload-xer", c.cfg.Endpoint, projectID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, pr)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, c.transportError(ctx, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, serverError(resp.StatusCode, data)
	}

	var wire struct {
		Message  string       `json:"message"`
		Schedule scheduleJSON `json:"schedule"`
	}
	if err := sonic.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrRequestFailed, err)
	}
	return wire.Schedule.toDomain(), nil
}

func writeUploadForm(form *multipart.Writer, f *os.File, fileName, scheduleName, description, createdBy string) error {
	part, err := form.CreateFormFile("file", fileName)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, f); err != nil {
		return err
	}
	fields := map[string]string{
		"schedule_name": scheduleName,
		"description":   description,
		"created_by":    createdBy,
	}
	for name, value := range fields {
		if value == "" {
			continue
		}
		if err := form.WriteField(name, value); err != nil {
			return err
		}
	}
	return nil
}
