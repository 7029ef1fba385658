package services

import (
	"testing"

	"bankofquack/internal/testutil"
)

func TestCreateSector(t *testing.T) {
	t.Run("creates_sector_with_categories", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSectorService(db)
		groceries := testutil.CreateTestCategoryWithName(t, db, "Groceries")
		utilities := testutil.CreateTestCategoryWithName(t, db, "Utilities")

		sector, err := svc.CreateSector("Essentials", []string{groceries.ID, utilities.ID})
		testutil.AssertNoError(t, err)
		if sector.Name != "Essentials" {
			t.Errorf("expected name Essentials, got %s", sector.Name)
		}
		if len(sector.Categories) != 2 {
			t.Errorf("expected 2 categories, got %d", len(sector.Categories))
		}
	})

	t.Run("creates_empty_sector", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSectorService(db)

		sector, err := svc.CreateSector("Leisure", nil)
		testutil.AssertNoError(t, err)
		if len(sector.Categories) != 0 {
			t.Errorf("expected no categories, got %d", len(sector.Categories))
		}
	})

	t.Run("rejects_duplicate_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSectorService(db)

		_, err := svc.CreateSector("Essentials", nil)
		testutil.AssertNoError(t, err)

		_, err = svc.CreateSector("Essentials", nil)
		testutil.AssertAppError(t, err, "DUPLICATE_SECTOR")
	})

	t.Run("rejects_unknown_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSectorService(db)

		_, err := svc.CreateSector("Essentials", []string{"00000000-0000-0000-0000-000000000000"})
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})
}

func TestGetSectors(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewSectorService(db)
	groceries := testutil.CreateTestCategoryWithName(t, db, "Groceries")

	first, err := svc.CreateSector("Essentials", []string{groceries.ID})
	testutil.AssertNoError(t, err)
	_, err = svc.CreateSector("Leisure", nil)
	testutil.AssertNoError(t, err)

	sectors, err := svc.GetSectors()
	testutil.AssertNoError(t, err)
	if len(sectors) != 2 {
		t.Fatalf("expected 2 sectors, got %d", len(sectors))
	}
	if sectors[0].ID != first.ID {
		t.Error("expected creation-order listing")
	}
	if len(sectors[0].Categories) != 1 {
		t.Errorf("expected preloaded categories, got %d", len(sectors[0].Categories))
	}
}

func TestUpdateSector(t *testing.T) {
	t.Run("renames_and_replaces_categories", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSectorService(db)
		groceries := testutil.CreateTestCategoryWithName(t, db, "Groceries")
		travel := testutil.CreateTestCategoryWithName(t, db, "Travel")

		sector, err := svc.CreateSector("Essentials", []string{groceries.ID})
		testutil.AssertNoError(t, err)

		updated, err := svc.UpdateSector(sector.ID, "Fun", []string{travel.ID})
		testutil.AssertNoError(t, err)
		if updated.Name != "Fun" {
			t.Errorf("expected name Fun, got %s", updated.Name)
		}
		if len(updated.Categories) != 1 || updated.Categories[0].ID != travel.ID {
			t.Errorf("expected category set replaced with Travel, got %+v", updated.Categories)
		}
	})

	t.Run("unknown_id_returns_not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSectorService(db)

		_, err := svc.UpdateSector("00000000-0000-0000-0000-000000000000", "Fun", nil)
		testutil.AssertAppError(t, err, "SECTOR_NOT_FOUND")
	})
}

func TestDeleteSector(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewSectorService(db)
	catSvc := NewCategoryService(db)
	groceries := testutil.CreateTestCategoryWithName(t, db, "Groceries")

	sector, err := svc.CreateSector("Essentials", []string{groceries.ID})
	testutil.AssertNoError(t, err)

	testutil.AssertNoError(t, svc.DeleteSector(sector.ID))

	_, err = svc.GetSectorByID(sector.ID)
	testutil.AssertAppError(t, err, "SECTOR_NOT_FOUND")

	// Categories survive sector deletion.
	_, err = catSvc.GetCategoryByID(groceries.ID)
	testutil.AssertNoError(t, err)
}
