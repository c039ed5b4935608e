package services

import (
	"legal-info/models"

	"go.uber.org/zap"
)

// MergeReport beschreibt, was beim Zusammenführen verloren ging.
type MergeReport struct {
	// Dropped zählt rechte Beiträge, die wegen Mapping/Nicht-Mapping-Konflikt verworfen wurden.
	Dropped int
	// DroppedPaths enthält die Pfade der verworfenen Beiträge ("" für die oberste Ebene).
	DroppedPaths []string
}

// StructureMerger führt eine Folge von Teil-Records zu einem Record zusammen.
type StructureMerger struct {
	logger *zap.Logger
}

func NewStructureMerger(logger *zap.Logger) *StructureMerger {
	return &StructureMerger{logger: logger}
}

// Merge faltet values in ein anfangs leeres Mapping. Die Eingaben gehen in den Besitz
// des Ergebnisses über: Teilbäume späterer Eingaben werden eingehängt, nicht kopiert.
func (sm *StructureMerger) Merge(values []models.Record) (*models.Mapping, MergeReport) {
	var report MergeReport
	acc := models.NewMapping()
	for _, v := range values {
		// acc ist immer ein Mapping: combine mutiert es in place oder verwirft v.
		combine(acc, v, "", &report)
	}
	if report.Dropped > 0 {
		sm.logger.Debug("Merge dropped incompatible values",
			zap.Int("dropped", report.Dropped),
			zap.Strings("paths", report.DroppedPaths))
	}
	return acc, report
}

// combine verbindet b mit a und gibt das Ergebnis zurück. ok == false heißt: a ist ein
// Mapping und b nicht, a bleibt dann unverändert und b wird verworfen.
func combine(a, b models.Record, path string, report *MergeReport) (models.Record, bool) {
	switch left := a.(type) {
	case *models.Sequence:
		if right, ok := b.(*models.Sequence); ok {
			left.Items = append(left.Items, right.Items...)
		} else {
			left.Items = append(left.Items, b)
		}
		return left, true
	case *models.Mapping:
		right, ok := b.(*models.Mapping)
		if !ok {
			report.Dropped++
			report.DroppedPaths = append(report.DroppedPaths, path)
			return left, false
		}
		for _, key := range right.Keys() {
			rv, _ := right.Get(key)
			lv, exists := left.Get(key)
			if !exists {
				left.Set(key, rv)
				continue
			}
			// bei Konflikt bleibt der linke Wert stehen
			merged, _ := combine(lv, rv, joinPath(path, key), report)
			left.Set(key, merged)
		}
		return left, true
	default:
		// Scalar oder nil: b überschreibt a.
		return b, true
	}
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
