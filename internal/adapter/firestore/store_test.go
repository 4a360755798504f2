package firestore

import (
	"errors"
	"testing"

	"cloud.google.com/go/firestore"
	"github.com/stretchr/testify/assert"
)

type fakeBulkJob struct {
	err error
}

func (j fakeBulkJob) Results() (*firestore.WriteResult, error) {
	return nil, j.err
}

func TestAwaitBulkJobs(t *testing.T) {
	boom := errors.New("deadline exceeded")

	tests := []struct {
		name    string
		jobs    []bulkJob
		wantErr string
	}{
		{"no jobs", nil, ""},
		{"all succeed", []bulkJob{fakeBulkJob{}, fakeBulkJob{}}, ""},
		{"one delete fails", []bulkJob{fakeBulkJob{}, fakeBulkJob{err: boom}, fakeBulkJob{}}, "1 of 3 deletes failed"},
		{"all deletes fail", []bulkJob{fakeBulkJob{err: boom}, fakeBulkJob{err: boom}}, "2 of 2 deletes failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := awaitBulkJobs(tt.jobs)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
			assert.ErrorIs(t, err, boom)
		})
	}
}
