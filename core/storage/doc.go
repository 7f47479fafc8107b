// Package storage provides the object-storage client used for archiving
// database exports.
//
// It wraps the MinIO SDK behind a narrow Client interface so the backup
// feature can be tested against mocks (see the mocks subpackage). When
// archiving is enabled, every export is also uploaded to the configured
// bucket under a backups/ prefix, giving the recover endpoint something to
// pull from after a disk loss.
package storage
