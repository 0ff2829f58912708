package crops

import (
	"testing"

	"krishi/models"
)

func sampleCrops() []models.Crop {
	return []models.Crop{
		{CropID: "c1", Name: "Wheat", Quantity: 100},
		{CropID: "c2", Name: "Rice", Variety: "Basmati", Quantity: 40},
	}
}

func TestFindCropIsCaseInsensitive(t *testing.T) {
	crops := sampleCrops()
	if findCrop(crops, "wheat") == nil {
		t.Fatalf("expected match on wheat")
	}
	if findCrop(crops, "maize") != nil {
		t.Fatalf("unexpected match on maize")
	}
}

func TestFindCropByID(t *testing.T) {
	crops := sampleCrops()
	if got := findCropByID(crops, "c2"); got == nil || got.Name != "Rice" {
		t.Fatalf("findCropByID(c2) = %+v", got)
	}
	if findCropByID(crops, "missing") != nil {
		t.Fatalf("expected nil for unknown id")
	}
}

func TestRemoveCrop(t *testing.T) {
	crops := sampleCrops()
	remaining, removed := removeCrop(crops, "c1")
	if !removed {
		t.Fatalf("expected removal")
	}
	if len(remaining) != 1 || remaining[0].CropID != "c2" {
		t.Fatalf("remaining = %+v", remaining)
	}
}

func TestRemoveCropMissing(t *testing.T) {
	crops := sampleCrops()
	remaining, removed := removeCrop(crops, "nope")
	if removed {
		t.Fatalf("expected no removal")
	}
	if len(remaining) != 2 {
		t.Fatalf("list must be unchanged, got %+v", remaining)
	}
}
