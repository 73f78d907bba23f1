package service

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"tenderdesk-backend/models"
	"tenderdesk-backend/normalizer"
	"tenderdesk-backend/repository"
	"tenderdesk-backend/scoring"
	"tenderdesk-backend/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrBatchNotFound   = errors.New("batch not found")
	ErrEmptyArchive    = errors.New("archive contains no files")
	ErrInvalidArchive  = errors.New("invalid zip archive")
	ErrBatchProcessing = errors.New("batch is already being processed")
)

// BatchService runs the extraction pipeline: unpack an uploaded archive,
// extract each document, merge the results and publish the normalized tender.
type BatchService struct {
	batchRepo  *repository.BatchRepository
	fileRepo   *repository.BatchFileRepository
	tenderRepo *repository.TenderRepository
	store      storage.Storage
	extractor  Extractor
}

// BatchServiceOption is a functional option for configuring BatchService
type BatchServiceOption func(*BatchService)

// WithBatchRepository sets the batch repository
func WithBatchRepository(repo *repository.BatchRepository) BatchServiceOption {
	return func(s *BatchService) {
		s.batchRepo = repo
	}
}

// WithBatchFileRepository sets the batch file repository
func WithBatchFileRepository(repo *repository.BatchFileRepository) BatchServiceOption {
	return func(s *BatchService) {
		s.fileRepo = repo
	}
}

// WithBatchTenderRepository sets the tender repository
func WithBatchTenderRepository(repo *repository.TenderRepository) BatchServiceOption {
	return func(s *BatchService) {
		s.tenderRepo = repo
	}
}

// WithStorage sets the archive storage backend
func WithStorage(store storage.Storage) BatchServiceOption {
	return func(s *BatchService) {
		s.store = store
	}
}

// WithExtractor sets the document extractor
func WithExtractor(extractor Extractor) BatchServiceOption {
	return func(s *BatchService) {
		s.extractor = extractor
	}
}

// NewBatchService creates a new batch service with the given options
func NewBatchService(opts ...BatchServiceOption) *BatchService {
	s := &BatchService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateBatchRequest carries an uploaded tender archive
type CreateBatchRequest struct {
	Filename string
	Size     int64
	Content  io.ReaderAt
}

// CreateBatch validates the uploaded archive, stores it and registers one
// batch file per archive entry. Processing is started separately.
func (s *BatchService) CreateBatch(ctx context.Context, req CreateBatchRequest) (*models.Batch, error) {
	zr, err := zip.NewReader(req.Content, req.Size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArchive, err)
	}

	var entries []*zip.File
	for _, entry := range zr.File {
		if entry.FileInfo().IsDir() {
			continue
		}
		if strings.HasPrefix(entry.FileInfo().Name(), ".") {
			continue
		}
		entries = append(entries, entry)
	}
	if len(entries) == 0 {
		return nil, ErrEmptyArchive
	}

	archivePath, err := s.store.Upload(ctx, uuid.New(), req.Filename, io.NewSectionReader(req.Content, 0, req.Size))
	if err != nil {
		return nil, fmt.Errorf("failed to store archive: %w", err)
	}

	batch := &models.Batch{
		RunID:       "run_" + uuid.NewString(),
		Status:      models.BatchStatusPending,
		Filename:    req.Filename,
		ArchivePath: archivePath,
		TotalFiles:  len(entries),
	}

	if err := s.batchRepo.Create(ctx, batch); err != nil {
		return nil, fmt.Errorf("failed to create batch: %w", err)
	}

	for _, entry := range entries {
		file := &models.BatchFile{
			BatchID:  batch.ID,
			Filename: entry.Name,
			Size:     int64(entry.UncompressedSize64),
			Status:   models.FileStatusPending,
		}
		if err := s.fileRepo.Create(ctx, file); err != nil {
			return nil, fmt.Errorf("failed to create batch file record: %w", err)
		}
	}

	return batch, nil
}

// StartProcessing marks a batch as processing. The actual pipeline runs in
// Process, typically on a background goroutine spawned by the handler.
func (s *BatchService) StartProcessing(ctx context.Context, batchID uuid.UUID) error {
	batch, err := s.getBatch(ctx, batchID)
	if err != nil {
		return err
	}

	if batch.Status == models.BatchStatusProcessing {
		return ErrBatchProcessing
	}

	if err := s.batchRepo.UpdateStatus(ctx, batchID, models.BatchStatusProcessing); err != nil {
		return fmt.Errorf("failed to update batch status: %w", err)
	}

	return nil
}

// Process runs extraction for every file of the batch. Per-file failures are
// recorded on the file and never abort the batch; the batch fails only when
// no file at all yields a usable bundle.
func (s *BatchService) Process(ctx context.Context, batchID uuid.UUID) error {
	batch, err := s.getBatch(ctx, batchID)
	if err != nil {
		return err
	}

	files, err := s.fileRepo.ListByBatchID(ctx, batchID)
	if err != nil {
		return s.failBatch(ctx, batchID, fmt.Sprintf("failed to list batch files: %v", err))
	}

	entries, err := s.readArchive(ctx, batch.ArchivePath)
	if err != nil {
		return s.failBatch(ctx, batchID, fmt.Sprintf("failed to read archive: %v", err))
	}

	var rawParts []map[string]any
	failed := 0
	for _, file := range files {
		if err := s.fileRepo.UpdateStatus(ctx, file.ID, models.FileStatusProcessing, nil); err != nil {
			log.Printf("Failed to mark file %s as processing: %v", file.ID, err)
		}

		content, ok := entries[file.Filename]
		if !ok {
			failed++
			s.failFile(ctx, file, "file missing from archive")
			continue
		}

		raw, err := s.extractor.Extract(ctx, file.Filename, content)
		if err != nil {
			failed++
			s.failFile(ctx, file, err.Error())
			continue
		}

		rawParts = append(rawParts, raw)
		if err := s.fileRepo.UpdateStatus(ctx, file.ID, models.FileStatusSuccess, nil); err != nil {
			log.Printf("Failed to mark file %s as success: %v", file.ID, err)
		}
	}

	if len(rawParts) == 0 {
		return s.failBatch(ctx, batchID, "no file produced a usable extraction")
	}

	merged := normalizer.MergeRawBundles(rawParts)
	bundle := models.BundleFromMap(merged)
	view := normalizer.BuildTenderView(bundle)

	tender := &models.Tender{
		Title:  view.Title,
		Buyer:  view.Buyer,
		Region: view.Region,
		Score:  view.Score,
		Status: models.TenderStatusOpen,
		View:   view,
	}
	tender.BatchID = &batchID
	if err := s.tenderRepo.Create(ctx, tender); err != nil {
		return s.failBatch(ctx, batchID, fmt.Sprintf("failed to store tender: %v", err))
	}

	status := models.BatchStatusCompleted
	if failed > 0 {
		status = models.BatchStatusCompletedWithErrors
	}

	if err := s.batchRepo.Complete(ctx, batchID, status, models.RawBundle(merged), tender.ID); err != nil {
		return fmt.Errorf("failed to complete batch: %w", err)
	}

	log.Printf("Batch %s finished with status %s (%d/%d files succeeded)",
		batchID, status, len(rawParts), len(files))
	return nil
}

// BatchSummary is the merged extraction result of a finished batch
type BatchSummary struct {
	RunID        string           `json:"run_id"`
	UIJSON       models.RawBundle `json:"ui_json"`
	TotalFiles   int              `json:"total_files"`
	SuccessFiles int              `json:"success_files"`
	FailedFiles  int              `json:"failed_files"`
	Status       string           `json:"status"`
}

// GetSummary returns the merged extraction result and per-batch counters
func (s *BatchService) GetSummary(ctx context.Context, batchID uuid.UUID) (*BatchSummary, error) {
	batch, err := s.getBatch(ctx, batchID)
	if err != nil {
		return nil, err
	}

	counts, err := s.fileRepo.Counts(ctx, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to count batch files: %w", err)
	}

	return &BatchSummary{
		RunID:        batch.RunID,
		UIJSON:       batch.UIJSON,
		TotalFiles:   batch.TotalFiles,
		SuccessFiles: counts.Success,
		FailedFiles:  counts.Failed,
		Status:       string(batch.Status),
	}, nil
}

// BatchStatusReport is the flat polling payload for a running batch
type BatchStatusReport struct {
	BatchStatus     string `json:"batch_status"`
	TotalFiles      int    `json:"total_files"`
	FilesSuccess    int    `json:"files_success"`
	FilesFailed     int    `json:"files_failed"`
	FilesProcessing int    `json:"files_processing"`
	FilesPending    int    `json:"files_pending"`
	ProgressPercent int    `json:"progress_percent"`
}

// GetStatus returns the per-file progress of a batch. Progress counts both
// succeeded and failed files as done.
func (s *BatchService) GetStatus(ctx context.Context, batchID uuid.UUID) (*BatchStatusReport, error) {
	batch, err := s.getBatch(ctx, batchID)
	if err != nil {
		return nil, err
	}

	counts, err := s.fileRepo.Counts(ctx, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to count batch files: %w", err)
	}

	return &BatchStatusReport{
		BatchStatus:     string(batch.Status),
		TotalFiles:      batch.TotalFiles,
		FilesSuccess:    counts.Success,
		FilesFailed:     counts.Failed,
		FilesProcessing: counts.Processing,
		FilesPending:    counts.Pending,
		ProgressPercent: scoring.PercentOf(counts.Success+counts.Failed, batch.TotalFiles),
	}, nil
}

// ListFiles returns the per-file records of a batch
func (s *BatchService) ListFiles(ctx context.Context, batchID uuid.UUID) ([]*models.BatchFile, error) {
	if _, err := s.getBatch(ctx, batchID); err != nil {
		return nil, err
	}
	return s.fileRepo.ListByBatchID(ctx, batchID)
}

func (s *BatchService) getBatch(ctx context.Context, batchID uuid.UUID) (*models.Batch, error) {
	batch, err := s.batchRepo.GetByID(ctx, batchID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBatchNotFound
		}
		return nil, fmt.Errorf("failed to get batch: %w", err)
	}
	return batch, nil
}

// readArchive downloads the stored archive and returns its entries by name
func (s *BatchService) readArchive(ctx context.Context, archivePath string) (map[string][]byte, error) {
	reader, err := s.store.Download(ctx, archivePath)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read archive: %w", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArchive, err)
	}

	entries := make(map[string][]byte, len(zr.File))
	for _, entry := range zr.File {
		if entry.FileInfo().IsDir() {
			continue
		}
		rc, err := entry.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", entry.Name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", entry.Name, err)
		}
		entries[entry.Name] = content
	}

	return entries, nil
}

func (s *BatchService) failFile(ctx context.Context, file *models.BatchFile, message string) {
	log.Printf("Extraction failed for %s: %s", file.Filename, message)
	if err := s.fileRepo.UpdateStatus(ctx, file.ID, models.FileStatusFailed, &message); err != nil {
		log.Printf("Failed to mark file %s as failed: %v", file.ID, err)
	}
}

func (s *BatchService) failBatch(ctx context.Context, batchID uuid.UUID, message string) error {
	log.Printf("Batch %s failed: %s", batchID, message)
	if err := s.batchRepo.Fail(ctx, batchID, message); err != nil {
		log.Printf("Failed to mark batch %s as failed: %v", batchID, err)
	}
	return errors.New(message)
}
