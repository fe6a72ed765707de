package schedule

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoLoadMissingRowYieldsEmptyPlan(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectQuery("SELECT payload").
		WithArgs("current").
		WillReturnRows(sqlmock.NewRows([]string{"payload"}))

	repo := &PGRepo{DB: db}
	plan, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(plan.Orders) != 0 || len(plan.MixerBlocks) != 0 {
		t.Fatalf("expected empty plan, got %+v", plan)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoRoundTripsPlanPayload(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	plan := Plan{
		Orders: []Order{makeOrder("a", "PO-1", "L1", 480, 540, 45)},
		MixerBlocks: []MixerBlock{
			{ID: "blk-1", MixerID: "M1", OrderID: "a", Start: 435, End: 480, Kind: KindManufacturing},
		},
	}
	payload, err := json.Marshal(plan)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	mock.ExpectExec("INSERT INTO schedule_snapshots").
		WithArgs("current", payload, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT payload").
		WithArgs("current").
		WillReturnRows(sqlmock.NewRows([]string{"payload"}).AddRow(payload))

	repo := &PGRepo{DB: db}
	if err := repo.Save(context.Background(), plan); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded.Orders) != 1 || loaded.Orders[0].ID != "a" {
		t.Fatalf("loaded orders = %+v", loaded.Orders)
	}
	if len(loaded.MixerBlocks) != 1 || loaded.MixerBlocks[0].Kind != KindManufacturing {
		t.Fatalf("loaded blocks = %+v", loaded.MixerBlocks)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
