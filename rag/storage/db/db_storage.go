package db

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/antgroup/ragqa/rag"
	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// FileName is the sqlite file created inside the persistence directory.
const FileName = "ragqa.db"

var ErrDimensionMismatch = errors.New("query vector dimension does not match stored embeddings")

type Storage struct {
	db          *gorm.DB
	distance    string
	knowledgeID int64
	logger      *zerolog.Logger

	mu    sync.Mutex
	units []*rag.TextUnit
}

var _ rag.VectorStorage = (*Storage)(nil)

func NewStorage(opts ...DBStorageOption) *Storage {
	nop := zerolog.Nop()
	s := &Storage{
		distance:    DistanceL2,
		knowledgeID: 1,
		logger:      &nop,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open 打开 dir 下的 sqlite 向量库，reset 为 true 时先删除整个目录再重建
func Open(dir string, reset bool, opts ...DBStorageOption) (*Storage, error) {
	if reset {
		if err := os.RemoveAll(dir); err != nil {
			return nil, fmt.Errorf("reset persist directory: %w", err)
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create persist directory: %w", err)
	}
	db, err := gorm.Open(sqlite.Open(filepath.Join(dir, FileName)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open vector store: %w", err)
	}
	s := NewStorage(append([]DBStorageOption{WithDB(db)}, opts...)...)
	if err = s.Migrate(); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}

func (s *Storage) Migrate() error {
	if _, err := distanceFunc(s.distance); err != nil {
		return err
	}
	return s.db.AutoMigrate(&Knowledge{}, &Document{}, &TextUnit{})
}

func (s *Storage) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *Storage) Load(ctx context.Context, wfCtx *rag.WorkflowContext) error {
	if wfCtx.Id == 0 {
		return errors.New("id is not set")
	}
	if wfCtx.Documents == nil || wfCtx.TextUnits == nil {
		return errors.New("please call rag.NewWorkflowContext() to create a new workflow context")
	}

	var knowledge Knowledge
	if err := s.db.WithContext(ctx).Where("id = ?", wfCtx.Id).First(&knowledge).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return nil
	}

	if err := s.loadDocuments(ctx, knowledge, wfCtx); err != nil {
		return err
	}
	return s.loadTextUnits(ctx, knowledge, wfCtx)
}

func (s *Storage) Save(ctx context.Context, wfCtx *rag.WorkflowContext) error {
	if wfCtx.Id == 0 {
		return errors.New("id is not set")
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var knowledge Knowledge
		if err := tx.Where("id = ?", wfCtx.Id).First(&knowledge).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		} else if err = s.deleteAllData(knowledge, tx); err != nil {
			return err
		}

		knowledge.ID = wfCtx.Id
		knowledge.Distance = s.distance
		if err := s.saveDocument(wfCtx, &knowledge, tx); err != nil {
			return err
		}
		if err := s.saveTextUnit(wfCtx, &knowledge, tx); err != nil {
			return err
		}
		return tx.Save(&knowledge).Error
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.units = nil
	s.mu.Unlock()
	s.logger.Debug().Int64("knowledge", wfCtx.Id).
		Int("documents", len(wfCtx.Documents)).
		Int("text_units", len(wfCtx.TextUnits)).
		Msg("saved knowledge")
	return nil
}

// Search 按距离从小到大返回最多 k 个片段
func (s *Storage) Search(ctx context.Context, vector []float32, k int) ([]rag.Hit, error) {
	if k <= 0 {
		return []rag.Hit{}, nil
	}
	dist, err := distanceFunc(s.distance)
	if err != nil {
		return nil, err
	}
	units, err := s.cachedUnits(ctx)
	if err != nil {
		return nil, err
	}

	hits := make([]rag.Hit, 0, len(units))
	for _, unit := range units {
		if len(unit.Embedding) == 0 {
			continue
		}
		if len(unit.Embedding) != len(vector) {
			return nil, fmt.Errorf("%w: query %d, stored %d",
				ErrDimensionMismatch, len(vector), len(unit.Embedding))
		}
		hits = append(hits, rag.Hit{
			TextUnit: unit,
			Distance: dist(vector, unit.Embedding),
		})
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})
	if len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}

func (s *Storage) cachedUnits(ctx context.Context) ([]*rag.TextUnit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.units != nil {
		return s.units, nil
	}

	wfCtx := rag.NewWorkflowContext()
	if err := s.loadTextUnits(ctx, Knowledge{ID: s.knowledgeID}, wfCtx); err != nil {
		return nil, err
	}
	s.units = wfCtx.TextUnits
	return s.units, nil
}

func (s *Storage) loadDocuments(ctx context.Context, knowledge Knowledge, wfCtx *rag.WorkflowContext) error {
	var documents []Document
	if err := s.db.WithContext(ctx).Order("id").
		Find(&documents, "knowledge_id = ?", knowledge.ID).Error; err != nil {
		return err
	}
	ragDocuments := make([]*rag.Document, len(documents))
	for i, doc := range documents {
		ragDocuments[i] = &rag.Document{
			Id:          doc.DocID,
			Title:       doc.Title,
			Content:     doc.Content,
			Source:      doc.Source,
			Page:        doc.Page,
			TextUnitIds: splitIDs(doc.TextUnitIDs),
		}
	}
	wfCtx.Documents = append(wfCtx.Documents, ragDocuments...)
	return nil
}

func (s *Storage) loadTextUnits(ctx context.Context, knowledge Knowledge, wfCtx *rag.WorkflowContext) error {
	var textUnits []TextUnit
	if err := s.db.WithContext(ctx).Order("id").
		Find(&textUnits, "knowledge_id = ?", knowledge.ID).Error; err != nil {
		return err
	}
	ragTextUnits := make([]*rag.TextUnit, len(textUnits))
	for i, unit := range textUnits {
		embedding, err := decodeVector(unit.Embedding)
		if err != nil {
			return fmt.Errorf("text unit %s: %w", unit.UnitID, err)
		}
		ragTextUnits[i] = &rag.TextUnit{
			Id:          unit.UnitID,
			Text:        unit.Text,
			DocumentIds: splitIDs(unit.DocumentIDs),
			NumToken:    unit.NumToken,
			Headings:    splitHeadings(unit.Headings),
			Embedding:   embedding,
		}
	}
	wfCtx.TextUnits = append(wfCtx.TextUnits, ragTextUnits...)
	return nil
}

func (s *Storage) deleteAllData(knowledge Knowledge, tx *gorm.DB) error {
	if err := tx.Delete(&Document{}, "knowledge_id = ?", knowledge.ID).Error; err != nil {
		return err
	}
	return tx.Delete(&TextUnit{}, "knowledge_id = ?", knowledge.ID).Error
}

func batchCreate(tx *gorm.DB, data interface{}, batchSize int) error {
	v := reflect.ValueOf(data)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Slice {
		return fmt.Errorf("data must be a slice or a pointer to a slice")
	}
	length := v.Len()

	for i := 0; i < length; i += batchSize {
		end := i + batchSize
		if end > length {
			end = length
		}
		batch := v.Slice(i, end).Interface()
		if err := tx.Create(batch).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *Storage) saveDocument(wfCtx *rag.WorkflowContext, knowledge *Knowledge, tx *gorm.DB) error {
	ids := make([]string, len(wfCtx.Documents))
	documents := make([]Document, len(wfCtx.Documents))
	for i, ragDocument := range wfCtx.Documents {
		ids[i] = ragDocument.Id
		documents[i] = Document{
			DocID:       ragDocument.Id,
			Title:       ragDocument.Title,
			Content:     ragDocument.Content,
			Source:      ragDocument.Source,
			Page:        ragDocument.Page,
			TextUnitIDs: strings.Join(ragDocument.TextUnitIds, ","),
			KnowledgeId: knowledge.ID,
		}
	}
	knowledge.DocumentIDs = strings.Join(ids, ",")
	if len(documents) == 0 {
		return nil
	}
	return batchCreate(tx, &documents, 500)
}

func (s *Storage) saveTextUnit(wfCtx *rag.WorkflowContext, knowledge *Knowledge, tx *gorm.DB) error {
	ids := make([]string, len(wfCtx.TextUnits))
	textUnits := make([]TextUnit, len(wfCtx.TextUnits))
	for i, ragTextUnit := range wfCtx.TextUnits {
		ids[i] = ragTextUnit.Id
		textUnits[i] = TextUnit{
			UnitID:      ragTextUnit.Id,
			Text:        ragTextUnit.Text,
			DocumentIDs: strings.Join(ragTextUnit.DocumentIds, ","),
			NumToken:    ragTextUnit.NumToken,
			Headings:    strings.Join(ragTextUnit.Headings, "\n"),
			Embedding:   encodeVector(ragTextUnit.Embedding),
			Dim:         len(ragTextUnit.Embedding),
			KnowledgeId: knowledge.ID,
		}
	}
	knowledge.TextUnitIDs = strings.Join(ids, ",")
	if len(textUnits) == 0 {
		return nil
	}
	return batchCreate(tx, &textUnits, 500)
}

func splitIDs(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, ",")
}

func splitHeadings(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
