// Package modelio persists and reloads a trained AI model: its name, its
// training provenance, and the per-feature processing and weight that the
// genetic trainer produced (spec §6 "AI model").
package modelio

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// ProcessingKind distinguishes the two feature-transform variants a model
// record can describe.
type ProcessingKind int

const (
	// Linear is the identity-or-custom-function raw->f32 transform
	// normalized against a fixed [Min, Max] window.
	Linear ProcessingKind = iota
	// Table is a precomputed lookup (e.g. a survival-time table) indexed
	// from MinValue, normalized against the table's own min/max.
	Table
)

// Processing describes whichever transform variant produced a feature,
// carrying only the fields relevant to its Kind.
type Processing struct {
	Kind ProcessingKind

	// Linear fields.
	Min, Max float32
	Negative bool

	// Table fields.
	TableMinValue int
	TableValues   []float32
}

// FeatureRecord is one board feature's identity, processing, and learned
// weight.
type FeatureRecord struct {
	ID         string
	Name       string
	SourceID   string
	Processing Processing
	Weight     float32
}

// Model is the full persisted record produced by the trainer.
type Model struct {
	Name         string
	TrainedAt    string
	FinalFitness float32
	Features     []FeatureRecord

	// FileName is set by Save/Load and used for the rename-before-overwrite
	// write discipline; it is not part of the serialized record itself.
	FileName string
}

// AsText renders m in the line-oriented, comment-tolerant format Save and
// Load use. Every record line is self-contained key=value pairs so adding a
// field never breaks older readers that skip unknown keys.
func (m *Model) AsText() string {
	var b strings.Builder
	fmt.Fprintf(&b, "model name=%s trained_at=%s final_fitness=%.6f\n", m.Name, m.TrainedAt, m.FinalFitness)
	for _, f := range m.Features {
		switch f.Processing.Kind {
		case Linear:
			fmt.Fprintf(&b, "feature id=%s name=%s source=%s weight=%.6f kind=linear min=%.6f max=%.6f negative=%t\n",
				f.ID, f.Name, f.SourceID, f.Weight, f.Processing.Min, f.Processing.Max, f.Processing.Negative)
		case Table:
			values := make([]string, len(f.Processing.TableValues))
			for i, v := range f.Processing.TableValues {
				values[i] = strconv.FormatFloat(float64(v), 'f', 6, 32)
			}
			fmt.Fprintf(&b, "feature id=%s name=%s source=%s weight=%.6f kind=table min_value=%d table=%s\n",
				f.ID, f.Name, f.SourceID, f.Weight, f.Processing.TableMinValue, strings.Join(values, ","))
		}
	}
	return b.String()
}

// Save writes m to m.FileName, renaming any existing file to
// m.FileName+"~" first (the teacher's backup-before-overwrite discipline).
func (m *Model) Save() error {
	if m.FileName == "" {
		klog.Errorf("model %q not saved, no file name was set", m.Name)
		return nil
	}
	if _, err := os.Stat(m.FileName); err == nil {
		if err := os.Rename(m.FileName, m.FileName+"~"); err != nil {
			return errors.Wrapf(err, "failed to rename %s to %s", m.FileName, m.FileName+"~")
		}
	} else if !os.IsNotExist(err) {
		return errors.Wrapf(err, "failed to stat %s", m.FileName)
	}
	if err := os.WriteFile(m.FileName, []byte(m.AsText()), 0644); err != nil {
		return errors.Wrapf(err, "failed to save model to %s", m.FileName)
	}
	return nil
}

var (
	cacheMu     sync.Mutex
	modelByPath = map[string]*Model{}
)

// LoadOrCreate loads the model at fileName, or — if it doesn't exist —
// creates one from features, caching the result so repeated calls for the
// same path return the same instance.
func LoadOrCreate(fileName string, features []FeatureRecord) (*Model, error) {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	if cached, ok := modelByPath[fileName]; ok {
		return cached, nil
	}
	if _, err := os.Stat(fileName); os.IsNotExist(err) {
		m := &Model{FileName: fileName, Features: features}
		modelByPath[fileName] = m
		return m, nil
	}
	m, err := Load(fileName)
	if err != nil {
		return nil, err
	}
	modelByPath[fileName] = m
	return m, nil
}

// Load parses a model previously written by Save.
func Load(fileName string) (*Model, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open model file %s", fileName)
	}
	defer f.Close()

	m := &Model{FileName: fileName}
	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		kv := make(map[string]string, len(fields))
		for _, field := range fields[1:] {
			parts := strings.SplitN(field, "=", 2)
			if len(parts) == 2 {
				kv[parts[0]] = parts[1]
			}
		}
		switch fields[0] {
		case "model":
			m.Name = kv["name"]
			m.TrainedAt = kv["trained_at"]
			fitness, err := strconv.ParseFloat(kv["final_fitness"], 32)
			if err != nil {
				return nil, errors.Wrapf(err, "model file %s, line %d: bad final_fitness", fileName, lineNum)
			}
			m.FinalFitness = float32(fitness)
		case "feature":
			rec, err := parseFeatureRecord(kv)
			if err != nil {
				return nil, errors.Wrapf(err, "model file %s, line %d", fileName, lineNum)
			}
			m.Features = append(m.Features, rec)
		default:
			return nil, errors.Errorf("model file %s, line %d: unknown record kind %q", fileName, lineNum, fields[0])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return m, nil
}

func parseFeatureRecord(kv map[string]string) (FeatureRecord, error) {
	weight, err := strconv.ParseFloat(kv["weight"], 32)
	if err != nil {
		return FeatureRecord{}, errors.Wrap(err, "bad weight")
	}
	rec := FeatureRecord{ID: kv["id"], Name: kv["name"], SourceID: kv["source"], Weight: float32(weight)}
	switch kv["kind"] {
	case "table":
		minValue, err := strconv.Atoi(kv["min_value"])
		if err != nil {
			return FeatureRecord{}, errors.Wrap(err, "bad min_value")
		}
		var values []float32
		if raw := kv["table"]; raw != "" {
			for _, part := range strings.Split(raw, ",") {
				v, err := strconv.ParseFloat(part, 32)
				if err != nil {
					return FeatureRecord{}, errors.Wrapf(err, "bad table value %q", part)
				}
				values = append(values, float32(v))
			}
		}
		rec.Processing = Processing{Kind: Table, TableMinValue: minValue, TableValues: values}
	default:
		minV, err := strconv.ParseFloat(kv["min"], 32)
		if err != nil {
			return FeatureRecord{}, errors.Wrap(err, "bad min")
		}
		maxV, err := strconv.ParseFloat(kv["max"], 32)
		if err != nil {
			return FeatureRecord{}, errors.Wrap(err, "bad max")
		}
		rec.Processing = Processing{Kind: Linear, Min: float32(minV), Max: float32(maxV), Negative: kv["negative"] == "true"}
	}
	return rec, nil
}
