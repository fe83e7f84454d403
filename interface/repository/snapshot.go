package repository

import (
	"allocator/domain"

	"github.com/behrang/sqlbatch"
)

const (
	sqlSnapshotUpsert = `
	insert into snapshots as c (
			key, snapshot
		)
		values (
			$1, $2::jsonb
		)
	on conflict (key) do
		update set
			snapshot = $2::jsonb
`

	sqlSnapshotFind = `
	select
		snapshot
	from snapshots
	where key = $1
`
)

// SnapshotKeyLatest is the single key the simulate run keeps current.
const SnapshotKeyLatest = "latest"

// SnapshotRepository stores allocator state snapshots by key, one JSON
// document per key.
type SnapshotRepository struct {
	batchHandler BatchHandler
}

func NewSnapshotRepository(db BatchHandler) *SnapshotRepository {
	return &SnapshotRepository{batchHandler: db}
}

func readSnapshot(scan func(...interface{}) error) (interface{}, error) {
	var jstr []byte
	err := scan(&jstr)
	if err != nil {
		return nil, err
	}

	r := domain.AllocatorSnapshot{}
	err = r.FromJson(string(jstr))
	return &r, err
}

func (repo *SnapshotRepository) Upsert(key string, snapshot domain.Memorable) error {

	jstr := snapshot.ToJson()
	_, err := repo.batchHandler.Batch(&BatchOptionNormal, []sqlbatch.Command{
		{
			Query: sqlSnapshotUpsert,
			Args: []interface{}{
				key, jstr,
			},
			Affect: 1,
		},
	})
	return err
}

func (repo *SnapshotRepository) Find(key string) (*domain.AllocatorSnapshot, error) {
	results, err := repo.batchHandler.Batch(&BatchOptionNormalReadOnly, []sqlbatch.Command{
		{
			Query:   sqlSnapshotFind,
			Args:    []interface{}{key},
			ReadOne: readSnapshot,
		},
	})
	result, _ := results[0].(*domain.AllocatorSnapshot)
	return result, err
}
