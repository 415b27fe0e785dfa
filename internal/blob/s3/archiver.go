package s3blob

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/cascadeprotocol/cascade/internal/domain"
)

// HistoryArchiver implements domain.HistoryArchiver, writing one JSON object
// per resolved market under history/<marketID>/<timestamp>.json.
type HistoryArchiver struct {
	uploader *manager.Uploader
	bucket   string
}

// NewHistoryArchiver creates a HistoryArchiver backed by the given Client.
func NewHistoryArchiver(c *Client) *HistoryArchiver {
	return &HistoryArchiver{
		uploader: manager.NewUploader(c.S3()),
		bucket:   c.Bucket(),
	}
}

// historyDump is the archived document. It carries enough context to chart
// the series without a follow-up lookup.
type historyDump struct {
	MarketID         string                `json:"marketId"`
	Question         string                `json:"question"`
	Category         domain.MarketCategory `json:"category"`
	WinningOutcomeID string                `json:"winningOutcomeId"`
	Outcomes         []domain.Outcome      `json:"outcomes"`
	ResolvedAt       time.Time             `json:"resolvedAt"`
	History          []domain.HistoryPoint `json:"history"`
}

// Archive uploads the market's odds history and returns the object key.
func (a *HistoryArchiver) Archive(ctx context.Context, m domain.Market) (string, error) {
	now := time.Now().UTC()
	dump := historyDump{
		MarketID:         m.ID,
		Question:         m.Question,
		Category:         m.Category,
		WinningOutcomeID: m.WinningOutcomeID,
		Outcomes:         m.Outcomes,
		ResolvedAt:       now,
		History:          m.PriceHistory,
	}

	body, err := json.Marshal(dump)
	if err != nil {
		return "", fmt.Errorf("s3blob: marshal history %s: %w", m.ID, err)
	}

	key := fmt.Sprintf("history/%s/%s.json", m.ID, now.Format("20060102T150405Z"))
	_, err = a.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("s3blob: upload history %s: %w", m.ID, err)
	}
	return key, nil
}

var _ domain.HistoryArchiver = (*HistoryArchiver)(nil)
