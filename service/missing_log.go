package service

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"vitrina-tech/models"
)

// maxContextsPerRecord caps the distinct context hints kept per missing
// value so one hot miss cannot grow the log without bound
const maxContextsPerRecord = 10

// MissingMappingLog records every reference lookup the mapping table could
// not satisfy, keyed by (field, value). Records accumulate a frequency count
// and are never deleted automatically; operators review the summary, extend
// the mapping files, and clear the log explicitly.
//
// The log is persisted as a whole-file replace on every record call. Two
// operator sessions writing at once is last-writer-wins, which is acceptable
// for advisory data.
type MissingMappingLog struct {
	path string

	mu      sync.Mutex
	records map[string]map[string]*models.MissingMappingRecord // field -> value -> record
}

// NewMissingMappingLog creates the log, loading any previously persisted
// records so frequencies survive process restarts
func NewMissingMappingLog(path string) *MissingMappingLog {
	l := &MissingMappingLog{
		path:    path,
		records: make(map[string]map[string]*models.MissingMappingRecord),
	}
	l.load()
	return l
}

// Record upserts the (field, value) pair: first occurrence creates the
// record, every repeat increments the frequency and refreshes last-seen.
// context is a free-form hint (e.g. the model that triggered the lookup)
// and may be empty.
func (l *MissingMappingLog) Record(fieldName, value, context string) {
	fieldName = strings.TrimSpace(fieldName)
	value = strings.TrimSpace(value)
	if fieldName == "" || value == "" {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now().UTC()
	fieldRecords, exists := l.records[fieldName]
	if !exists {
		fieldRecords = make(map[string]*models.MissingMappingRecord)
		l.records[fieldName] = fieldRecords
	}

	record, exists := fieldRecords[value]
	if !exists {
		record = &models.MissingMappingRecord{
			Value:     value,
			FirstSeen: now,
		}
		fieldRecords[value] = record
		log.Printf("ℹ️  MissingMappingLog: first unresolved lookup for %s=%q", fieldName, value)
	}
	record.Frequency++
	record.LastSeen = now
	addContext(record, context)

	l.persistLocked()
}

// addContext appends a context hint if it is new and the record still has
// room for one
func addContext(record *models.MissingMappingRecord, context string) {
	context = strings.TrimSpace(context)
	if context == "" || len(record.Contexts) >= maxContextsPerRecord {
		return
	}
	for _, existing := range record.Contexts {
		if existing == context {
			return
		}
	}
	record.Contexts = append(record.Contexts, context)
}

// Summary returns every recorded miss grouped by field, each field's
// records sorted by frequency descending (ties by value) for operator
// review
func (l *MissingMappingLog) Summary() map[string][]models.MissingMappingRecord {
	l.mu.Lock()
	defer l.mu.Unlock()

	summary := make(map[string][]models.MissingMappingRecord, len(l.records))
	for field, fieldRecords := range l.records {
		list := make([]models.MissingMappingRecord, 0, len(fieldRecords))
		for _, record := range fieldRecords {
			list = append(list, *record)
		}
		sort.Slice(list, func(i, j int) bool {
			if list[i].Frequency != list[j].Frequency {
				return list[i].Frequency > list[j].Frequency
			}
			return list[i].Value < list[j].Value
		})
		summary[field] = list
	}
	return summary
}

// Clear drops every record and the persisted file. Operator action only.
func (l *MissingMappingLog) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.records = make(map[string]map[string]*models.MissingMappingRecord)
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		log.Printf("⚠️  MissingMappingLog: failed to remove %s: %v", l.path, err)
	}
	log.Printf("✓ MissingMappingLog: cleared")
}

// load reads the persisted log. A missing file is the normal first-run
// state; a corrupt file is preserved on disk and logged, and the process
// starts with an empty log rather than failing.
func (l *MissingMappingLog) load() {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("⚠️  MissingMappingLog: failed to read %s: %v (starting empty)", l.path, err)
		}
		return
	}

	var persisted map[string][]models.MissingMappingRecord
	if err := json.Unmarshal(data, &persisted); err != nil {
		log.Printf("⚠️  MissingMappingLog: corrupt log file %s: %v (starting empty, file left in place)", l.path, err)
		return
	}

	total := 0
	for field, list := range persisted {
		fieldRecords := make(map[string]*models.MissingMappingRecord, len(list))
		for i := range list {
			record := list[i]
			fieldRecords[record.Value] = &record
			total++
		}
		l.records[field] = fieldRecords
	}
	log.Printf("✓ MissingMappingLog: loaded %d records from %s", total, l.path)
}

// persistLocked writes the whole log file. Caller holds l.mu.
func (l *MissingMappingLog) persistLocked() {
	persisted := make(map[string][]models.MissingMappingRecord, len(l.records))
	for field, fieldRecords := range l.records {
		list := make([]models.MissingMappingRecord, 0, len(fieldRecords))
		for _, record := range fieldRecords {
			list = append(list, *record)
		}
		sort.Slice(list, func(i, j int) bool { return list[i].Value < list[j].Value })
		persisted[field] = list
	}

	data, err := json.MarshalIndent(persisted, "", "  ")
	if err != nil {
		log.Printf("⚠️  MissingMappingLog: failed to encode log: %v", err)
		return
	}
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		log.Printf("⚠️  MissingMappingLog: failed to create log directory: %v", err)
		return
	}
	if err := os.WriteFile(l.path, data, 0o644); err != nil {
		log.Printf("⚠️  MissingMappingLog: failed to write %s: %v", l.path, err)
	}
}
