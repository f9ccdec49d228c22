package api

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/lifehub/core/internal/ports"
)

// TransferClientImpl implements the TransferClient interface
type TransferClientImpl struct {
	client *Client
}

// NewTransferClient creates a new export/import endpoint wrapper
func NewTransferClient(client *Client) ports.TransferClient {
	return &TransferClientImpl{client: client}
}

// Export downloads a server-generated export payload. The body is kept
// raw: CSV and Markdown exports are not JSON.
func (c *TransferClientImpl) Export(ctx context.Context, req ports.ExportRequest) ([]byte, error) {
	query := url.Values{}
	query.Set("format", string(req.Format))
	if len(req.Sections) > 0 {
		query.Set("sections", strings.Join(req.Sections, ","))
	}

	payload, err := c.client.getRaw(ctx, "/export", query)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	return payload, nil
}

func (c *TransferClientImpl) Import(ctx context.Context, payload []byte) (*ports.ImportSummary, error) {
	// The import body is an opaque previously exported document, sent
	// verbatim rather than re-marshaled.
	var summary ports.ImportSummary
	if err := c.client.doRaw(ctx, http.MethodPost, "/import", bytes.NewReader(payload), &summary); err != nil {
		return nil, fmt.Errorf("import: %w", err)
	}
	return &summary, nil
}
