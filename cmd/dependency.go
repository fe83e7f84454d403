package cmd

import (
	"allocator/domain"
	"allocator/infrastructure/dbhandler"
	"allocator/interface/exporter"
	"allocator/interface/repository"
	"allocator/usecase"
	"database/sql"
	"log"
	"time"
)

func defaultDependencyInject() {
	exporter.Init()

	allocator = usecase.NewAllocator(domain.GetAuthorizedWallet(), domain.GetTimelockSeconds())

	// The journal database is optional; without it a run is in-memory only.
	dbURI := domain.GetDbUri()
	if dbURI == "" {
		journalInteractor = nil
		return
	}

	var err error
	dbPool, err = sql.Open("postgres", dbURI)
	if err != nil {
		log.Fatal(err)
	}
	dbPool.SetMaxOpenConns(20)
	dbPool.SetMaxIdleConns(5)
	dbPool.SetConnMaxIdleTime(1 * time.Minute)
	dbPool.SetConnMaxLifetime(4 * time.Hour)

	dbHandler := dbhandler.DBHandler{DB: dbPool}

	forwardRepository := repository.NewForwardRepository(dbHandler)
	snapshotRepository := repository.NewSnapshotRepository(dbHandler)

	journalInteractor = usecase.NewJournalInteractor(forwardRepository, snapshotRepository)
}

var dbPool *sql.DB
var allocator *usecase.Allocator
var journalInteractor *usecase.JournalInteractor
