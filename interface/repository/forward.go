package repository

import (
	"allocator/domain"
	"encoding/json"
	"fmt"
	"math/big"
	"time"

	"github.com/behrang/sqlbatch"
)

var ErrorBadForwardValue = fmt.Errorf("bad forward value in journal")

const (
	sqlForwardInsert = `
	insert into forwards (
			deposit_id, value, payload, create_time
		)
		values (
			$1, $2, $3::jsonb, $4
		)
`

	sqlForwardFindAll = `
	select
		deposit_id, value, payload
	from forwards
	order by id
`

	sqlForwardCount = `
	select count(*) from forwards
`
)

// ForwardRepository journals router forward records. The journal is
// append-only like the in-memory list it mirrors; rows are never updated.
type ForwardRepository struct {
	batchHandler BatchHandler
}

func NewForwardRepository(db BatchHandler) *ForwardRepository {
	return &ForwardRepository{batchHandler: db}
}

func readAllForwards(all interface{}, scan func(...interface{}) error) (interface{}, error) {
	var depositId uint64
	var value string
	var payloadJson []byte

	err := scan(&depositId, &value, &payloadJson)

	r := domain.RouterForward{}
	if err == nil {
		parsed, ok := new(big.Int).SetString(value, 10)
		if !ok {
			return all, fmt.Errorf("%w: %v", ErrorBadForwardValue, value)
		}
		r.Value = parsed
		err = json.Unmarshal(payloadJson, &r.Payload)
	}

	list := all.([]domain.RouterForward)
	list = append(list, r)
	return list, err
}

func (repo *ForwardRepository) Append(forward domain.RouterForward, timestamp time.Time) error {

	payloadJson, _ := json.Marshal(forward.Payload)
	_, err := repo.batchHandler.Batch(&BatchOptionNormal, []sqlbatch.Command{
		{
			Query: sqlForwardInsert,
			Args: []interface{}{
				forward.Payload.DepositId, forward.Value.String(), payloadJson, timestamp,
			},
			Affect: 1,
		},
	})
	return err
}

func (repo *ForwardRepository) FindAll() ([]domain.RouterForward, error) {
	results, err := repo.batchHandler.Batch(&BatchOptionNormalReadOnly, []sqlbatch.Command{
		{
			Query:   sqlForwardFindAll,
			Init:    make([]domain.RouterForward, 0),
			ReadAll: readAllForwards,
		},
	})
	result, _ := results[0].([]domain.RouterForward)
	return result, err
}

func (repo *ForwardRepository) Count() (int64, error) {
	results, err := repo.batchHandler.Batch(&BatchOptionNormalReadOnly, []sqlbatch.Command{
		{
			Query: sqlForwardCount,
			ReadOne: func(scan func(...interface{}) error) (interface{}, error) {
				var count int64
				err := scan(&count)
				return count, err
			},
		},
	})
	result, _ := results[0].(int64)
	return result, err
}
