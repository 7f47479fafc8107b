package backup

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"donation-manager/core/database"
	"donation-manager/core/reconcile"
	"donation-manager/core/storage"
	"donation-manager/core/utils"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ArchivePrefix is the object key prefix exports are archived under.
const ArchivePrefix = "backups/"

// ErrArchiveDisabled marks archive operations on a deployment without
// object storage configured.
var ErrArchiveDisabled = errors.New("archive storage is not configured")

// Archive describes one archived export in object storage.
type Archive struct {
	Name         string    `json:"name"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}

// Service implements database export and reconciliation.
type Service struct {
	db          *gorm.DB
	dbCfg       database.Config
	store       storage.Client
	bucket      string
	projectName string
	logger      *zap.Logger

	// mu serializes reconciliations; concurrent merges into the same
	// primary would interleave their transactions.
	mu sync.Mutex
}

// NewService creates a new backup service. store may be nil when archiving
// is disabled.
func NewService(db *gorm.DB, dbCfg database.Config, store storage.Client, bucket, projectName string, logger *zap.Logger) *Service {
	return &Service{
		db:          db,
		dbCfg:       dbCfg,
		store:       store,
		bucket:      bucket,
		projectName: projectName,
		logger:      logger.Named("backup"),
	}
}

// Export produces a downloadable snapshot of the live database. File-backed
// sqlite deployments get a byte copy of the database file; other backends get
// a textual dump of INSERT statements. When object storage is configured the
// export is also archived.
func (s *Service) Export(ctx context.Context) (string, []byte, error) {
	filename := fmt.Sprintf("%s_export_%d.db", s.projectName, time.Now().UTC().Unix())

	var content []byte
	var err error
	if s.dbCfg.IsFileBacked() {
		content, err = os.ReadFile(s.dbCfg.Name)
		if err != nil {
			return "", nil, fmt.Errorf("failed to read database file: %w", err)
		}
	} else {
		content, err = s.dump()
		if err != nil {
			return "", nil, err
		}
	}

	if s.store != nil {
		if err := s.archive(ctx, filename, content); err != nil {
			// The download still succeeds when the archive store is down.
			s.logger.Warn("Failed to archive export", zap.Error(err))
		}
	}

	s.logger.Info("Database exported",
		zap.String("filename", filename),
		zap.Int("bytes", len(content)),
	)
	return filename, content, nil
}

// dump renders every table as INSERT statements, for backends without a
// single database file to copy.
func (s *Service) dump() ([]byte, error) {
	tables, err := database.ListTables(s.db)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	sort.Strings(tables)

	var buf bytes.Buffer
	for _, table := range tables {
		schema, err := database.DescribeTable(s.db, table)
		if err != nil {
			return nil, fmt.Errorf("failed to describe table %s: %w", table, err)
		}

		var rows []map[string]any
		if err := s.db.Table(table).Find(&rows).Error; err != nil {
			return nil, fmt.Errorf("failed to read table %s: %w", table, err)
		}

		fmt.Fprintf(&buf, "-- %s\n", table)
		for _, row := range rows {
			values := make([]string, len(schema.Columns))
			for i, column := range schema.Columns {
				values[i] = sqlLiteral(row[column])
			}
			fmt.Fprintf(&buf, "INSERT INTO %s (%s) VALUES (%s);\n",
				table,
				strings.Join(schema.Columns, ", "),
				strings.Join(values, ", "),
			)
		}
		buf.WriteString("\n")
	}
	return buf.Bytes(), nil
}

func sqlLiteral(value any) string {
	if value == nil {
		return "NULL"
	}
	return "'" + strings.ReplaceAll(utils.ToString(value), "'", "''") + "'"
}

func (s *Service) archive(ctx context.Context, filename string, content []byte) error {
	exists, err := s.store.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := s.store.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	_, err = s.store.PutObject(ctx, s.bucket, ArchivePrefix+filename,
		bytes.NewReader(content), int64(len(content)),
		minio.PutObjectOptions{ContentType: "application/octet-stream"})
	if err != nil {
		return fmt.Errorf("failed to upload archive: %w", err)
	}
	return nil
}

// Reconcile merges an uploaded database file into the primary in the given
// mode. Reconciliations are serialized process-wide.
func (s *Service) Reconcile(path string, mode reconcile.Mode) (*reconcile.Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return reconcile.ReconcileFile(s.db, path, mode, s.logger)
}

// ListArchives returns the archived exports in object storage.
func (s *Service) ListArchives(ctx context.Context) ([]Archive, error) {
	if s.store == nil {
		return nil, ErrArchiveDisabled
	}

	archives := []Archive{}
	for object := range s.store.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    ArchivePrefix,
		Recursive: true,
	}) {
		if object.Err != nil {
			return nil, fmt.Errorf("failed to list archives: %w", object.Err)
		}
		archives = append(archives, Archive{
			Name:         strings.TrimPrefix(object.Key, ArchivePrefix),
			Size:         object.Size,
			LastModified: object.LastModified,
		})
	}
	return archives, nil
}
