package report_repo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/klauspost/compress/zstd"

	"negocio/internal/core/apperror"
	"negocio/internal/core/id"
	"negocio/internal/domain/reports"
	"negocio/internal/infrastructure/storage/postgres"
)

const aiReportsTable = "ai_reports"

// CompressionAlgo records how input_compressed was encoded.
type CompressionAlgo string

const (
	CompressionNone CompressionAlgo = "none"
	CompressionZstd CompressionAlgo = "zstd"
)

// DefaultCompressThreshold is the input size above which the snapshot is stored compressed.
const DefaultCompressThreshold = 8 * 1024

type reportRow struct {
	ID              id.ID           `db:"id"`
	UserID          string          `db:"user_id"`
	ReportType      string          `db:"report_type"`
	CreatedAt       time.Time       `db:"created_at"`
	InputData       []byte          `db:"input_data"`
	InputCompressed []byte          `db:"input_compressed"`
	CompressionAlgo CompressionAlgo `db:"compression_algo"`
	Prompt          string          `db:"prompt"`
	GeneratedText   string          `db:"generated_text"`
	Params          []byte          `db:"params"`
	Metadata        []byte          `db:"metadata"`
}

// AIReportRepo implements reports.Repository.
type AIReportRepo struct {
	txm               *postgres.TxManager
	builder           squirrel.StatementBuilderType
	encoder           *zstd.Encoder
	decoder           *zstd.Decoder
	compressThreshold int
}

var _ reports.Repository = (*AIReportRepo)(nil)

func NewAIReportRepo(txm *postgres.TxManager) (*AIReportRepo, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	return &AIReportRepo{
		txm:               txm,
		builder:           squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		encoder:           encoder,
		decoder:           decoder,
		compressThreshold: DefaultCompressThreshold,
	}, nil
}

func (r *AIReportRepo) toRow(rep *reports.Report) (*reportRow, error) {
	input, err := json.Marshal(rep.Input)
	if err != nil {
		return nil, fmt.Errorf("marshal input: %w", err)
	}
	params, err := json.Marshal(rep.Params)
	if err != nil {
		return nil, fmt.Errorf("marshal params: %w", err)
	}
	metadata, err := json.Marshal(rep.Metadata)
	if err != nil {
		return nil, fmt.Errorf("marshal metadata: %w", err)
	}

	row := &reportRow{
		ID:              rep.ID,
		UserID:          rep.UserID,
		ReportType:      string(rep.Type),
		CreatedAt:       rep.CreatedAt,
		InputData:       input,
		CompressionAlgo: CompressionNone,
		Prompt:          rep.Prompt,
		GeneratedText:   rep.Text,
		Params:          params,
		Metadata:        metadata,
	}
	if len(input) > r.compressThreshold {
		row.InputCompressed = r.encoder.EncodeAll(input, nil)
		row.InputData = nil
		row.CompressionAlgo = CompressionZstd
	}
	return row, nil
}

func (r *AIReportRepo) fromRow(row *reportRow) (*reports.Report, error) {
	rep := &reports.Report{
		ID:        row.ID,
		UserID:    row.UserID,
		Type:      reports.Type(row.ReportType),
		CreatedAt: row.CreatedAt,
		Prompt:    row.Prompt,
		Text:      row.GeneratedText,
	}

	input := row.InputData
	if row.CompressionAlgo == CompressionZstd {
		decoded, err := r.decoder.DecodeAll(row.InputCompressed, nil)
		if err != nil {
			return nil, fmt.Errorf("decompress input of report %s: %w", row.ID, err)
		}
		input = decoded
	}
	if len(input) > 0 {
		if err := json.Unmarshal(input, &rep.Input); err != nil {
			return nil, fmt.Errorf("unmarshal input: %w", err)
		}
	}
	if len(row.Params) > 0 {
		if err := json.Unmarshal(row.Params, &rep.Params); err != nil {
			return nil, fmt.Errorf("unmarshal params: %w", err)
		}
	}
	if len(row.Metadata) > 0 {
		if err := json.Unmarshal(row.Metadata, &rep.Metadata); err != nil {
			return nil, fmt.Errorf("unmarshal metadata: %w", err)
		}
	}
	return rep, nil
}

func (r *AIReportRepo) Create(ctx context.Context, rep *reports.Report) error {
	row, err := r.toRow(rep)
	if err != nil {
		return err
	}

	sql, args, err := r.builder.
		Insert(aiReportsTable).
		SetMap(postgres.StructToMap(row)).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "report", rep.ID.String())
	}
	return nil
}

func (r *AIReportRepo) selectRows() squirrel.SelectBuilder {
	return r.builder.
		Select(postgres.ExtractDBColumns[reportRow]()...).
		From(aiReportsTable)
}

func (r *AIReportRepo) GetByID(ctx context.Context, reportID id.ID, userID string) (*reports.Report, error) {
	sql, args, err := r.selectRows().
		Where(squirrel.Eq{"id": reportID, "user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var row reportRow
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &row, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("report", reportID.String())
		}
		return nil, postgres.MapError(err, "report", reportID.String())
	}
	return r.fromRow(&row)
}

func (r *AIReportRepo) listQuery(filter reports.ListFilter) squirrel.SelectBuilder {
	q := r.selectRows().
		Where(squirrel.Eq{"user_id": filter.UserID}).
		OrderBy("created_at DESC")

	if filter.Type != nil {
		q = q.Where(squirrel.Eq{"report_type": string(*filter.Type)})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"generated_text": pattern},
			squirrel.ILike{"prompt": pattern},
		})
	}
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}
	return q
}

func (r *AIReportRepo) List(ctx context.Context, filter reports.ListFilter) ([]*reports.Report, error) {
	sql, args, err := r.listQuery(filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []*reportRow
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}

	out := make([]*reports.Report, 0, len(rows))
	for _, row := range rows {
		rep, err := r.fromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, rep)
	}
	return out, nil
}

func (r *AIReportRepo) Delete(ctx context.Context, reportID id.ID, userID string) error {
	sql, args, err := r.builder.
		Delete(aiReportsTable).
		Where(squirrel.Eq{"id": reportID, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "report", reportID.String())
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("report", reportID.String())
	}
	return nil
}
