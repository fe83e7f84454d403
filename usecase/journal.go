package usecase

import (
	"allocator/domain"
	"allocator/interface/exporter"
	"allocator/interface/repository"
	"log"
	"time"
)

// JournalInteractor records the allocator's router forwards and state
// snapshots in the journal database. The allocator itself never depends on
// it; a harness run journals after each operation completes.
type JournalInteractor struct {
	forwardRepository  *repository.ForwardRepository
	snapshotRepository *repository.SnapshotRepository
}

func NewJournalInteractor(forwardRepository *repository.ForwardRepository,
	snapshotRepository *repository.SnapshotRepository) *JournalInteractor {
	interactor := &JournalInteractor{
		forwardRepository:  forwardRepository,
		snapshotRepository: snapshotRepository,
	}

	return interactor
}

func (interactor *JournalInteractor) StoreForwards(forwards []domain.RouterForward) error {
	stored, err := interactor.forwardRepository.Count()
	if err != nil {
		exporter.IncErrorCount()
		log.Printf("🔴 counting journaled forwards - %v\n", err.Error())
		return err
	}

	// The in-memory list is append-only, so rows past the stored count are
	// exactly the new ones.
	if stored > int64(len(forwards)) {
		stored = int64(len(forwards))
	}
	for _, forward := range forwards[stored:] {
		err := interactor.forwardRepository.Append(forward, time.Now())
		if err != nil {
			exporter.IncErrorCount()
			log.Printf("🔴 journaling forward [deposit: %v] - %v\n", forward.Payload.DepositId, err.Error())
			return err
		}
	}
	return nil
}

func (interactor *JournalInteractor) StoreSnapshot(allocator *Allocator) error {
	err := interactor.snapshotRepository.Upsert(repository.SnapshotKeyLatest, allocator.Snapshot())
	if err != nil {
		exporter.IncErrorCount()
		log.Printf("🔴 journaling snapshot - %v\n", err.Error())
		return err
	}
	return nil
}

func (interactor *JournalInteractor) LoadSnapshot() (*domain.AllocatorSnapshot, error) {
	snapshot, err := interactor.snapshotRepository.Find(repository.SnapshotKeyLatest)
	if err != nil {
		exporter.IncErrorCount()
		log.Printf("🔴 loading snapshot - %v\n", err.Error())
		return nil, err
	}
	return snapshot, nil
}
