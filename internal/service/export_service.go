package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"strconv"
	"time"

	"merchant-pulse/internal/core/domain"
	"merchant-pulse/internal/core/ports"
	"merchant-pulse/pkg/apperror"

	"github.com/rs/zerolog"
)

// isoMillis matches the millisecond ISO-8601 layout dashboards emit.
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// ExportConfig tunes exports.
type ExportConfig struct {
	MerchantLimit int           // Merchants per export
	CacheTTL      time.Duration // Lifetime of cached payloads
}

// exportService implements ports.ExportService.
type exportService struct {
	store ports.LedgerStore
	cache ports.ExportCache // nil = no caching
	cfg   ExportConfig
	log   zerolog.Logger
}

// NewExportService creates a new export service. cache may be nil.
func NewExportService(store ports.LedgerStore, cache ports.ExportCache, cfg ExportConfig, log zerolog.Logger) ports.ExportService {
	if cfg.MerchantLimit <= 0 {
		cfg.MerchantLimit = 1000
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = time.Minute
	}
	return &exportService{
		store: store,
		cache: cache,
		cfg:   cfg,
		log:   log,
	}
}

// ExportTransactions serializes the windowed, scoped, filtered and sorted ledger.
func (s *exportService) ExportTransactions(ctx context.Context, req ports.TransactionExportRequest) ([]byte, error) {
	if !req.Format.IsValid() {
		return nil, apperror.ErrUnsupportedFormat(string(req.Format))
	}

	snap := s.store.Snapshot()
	key, err := cacheKey("tx", snap.Version, req)
	if err != nil {
		return nil, apperror.ErrExportFailed(err)
	}
	if cached := s.lookup(ctx, key); cached != nil {
		return cached, nil
	}

	txns := SinceTransactions(snap.Transactions, req.TimeRange.OrDefault().Start(snap.Now))
	filter := req.Filter
	if req.MerchantID != "" {
		filter.MerchantID = req.MerchantID
	}
	if req.TransactionID != "" {
		txns = byTransactionID(txns, req.TransactionID)
	}
	txns = SortTransactions(FilterTransactions(txns, filter), req.Sort)

	var out []byte
	if req.Format == domain.ExportFormatJSON {
		out, err = json.MarshalIndent(struct {
			Transactions []domain.Transaction `json:"transactions"`
		}{txns}, "", "  ")
	} else {
		out, err = transactionsCSV(txns)
	}
	if err != nil {
		return nil, apperror.ErrExportFailed(err)
	}

	s.save(ctx, key, out)
	return out, nil
}

// ExportMerchants serializes up to MerchantLimit merchants of the windowed listing.
func (s *exportService) ExportMerchants(ctx context.Context, req ports.MerchantExportRequest) ([]byte, error) {
	if !req.Format.IsValid() {
		return nil, apperror.ErrUnsupportedFormat(string(req.Format))
	}

	snap := s.store.Snapshot()
	key, err := cacheKey("merchants", snap.Version, req)
	if err != nil {
		return nil, apperror.ErrExportFailed(err)
	}
	if cached := s.lookup(ctx, key); cached != nil {
		return cached, nil
	}

	merchants, _, _, _ := Paginate(ListMerchants(snap, ports.MerchantQuery{
		TimeRange: req.TimeRange,
		Filter:    req.Filter,
		Sort:      req.Sort,
	}), domain.Pagination{Page: 1, PageSize: s.cfg.MerchantLimit})

	var out []byte
	if req.Format == domain.ExportFormatJSON {
		out, err = json.MarshalIndent(struct {
			Merchants []domain.Merchant `json:"merchants"`
		}{merchants}, "", "  ")
	} else {
		out, err = merchantsCSV(merchants)
	}
	if err != nil {
		return nil, apperror.ErrExportFailed(err)
	}

	s.save(ctx, key, out)
	return out, nil
}

func (s *exportService) lookup(ctx context.Context, key string) []byte {
	if s.cache == nil {
		return nil
	}
	cached, err := s.cache.Get(ctx, key)
	if err != nil {
		s.log.Warn().Err(apperror.ErrCacheError(err)).Str("key", key).Msg("Export cache read failed, serializing")
		return nil
	}
	return cached
}

func (s *exportService) save(ctx context.Context, key string, payload []byte) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, payload, s.cfg.CacheTTL); err != nil {
		s.log.Warn().Err(apperror.ErrCacheError(err)).Str("key", key).Msg("Export cache write failed")
	}
}

// cacheKey scopes a payload to the ledger version and the request parameters.
func cacheKey(kind string, version uint64, req any) (string, error) {
	raw, err := json.Marshal(req)
	if err != nil {
		return "", err
	}
	h := fnv.New64a()
	_, _ = h.Write(raw)
	return fmt.Sprintf("%s:%d:%x", kind, version, h.Sum64()), nil
}

func byTransactionID(txns []domain.Transaction, id string) []domain.Transaction {
	for i := range txns {
		if txns[i].ID == id {
			return []domain.Transaction{txns[i]}
		}
	}
	return []domain.Transaction{}
}

func transactionsCSV(txns []domain.Transaction) ([]byte, error) {
	rows := make([][]string, 0, len(txns))
	for _, tx := range txns {
		rows = append(rows, []string{
			tx.ID,
			strconv.FormatInt(tx.Amount, 10),
			tx.MerchantName,
			string(tx.Status),
			tx.Timestamp.UTC().Format(isoMillis),
			tx.UserID,
			tx.Location,
			tx.Currency,
		})
	}
	return writeCSV(domain.TransactionCSVHeader, rows)
}

func merchantsCSV(ms []domain.Merchant) ([]byte, error) {
	rows := make([][]string, 0, len(ms))
	for _, m := range ms {
		rows = append(rows, []string{
			m.ID,
			m.Name,
			m.City,
			strconv.FormatInt(m.TransactionCount, 10),
			strconv.FormatInt(m.TransactionVolume, 10),
		})
	}
	return writeCSV(domain.MerchantCSVHeader, rows)
}

// writeCSV renders header and rows separated by "\n" with no trailing newline.
func writeCSV(header []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, err
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
