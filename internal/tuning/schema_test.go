package tuning_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

func TestSchema_ValidatesRepoConfig(t *testing.T) {
	schema, err := jsonschema.Compile(filepath.Join("..", "..", "schemas", "tuning.schema.json"))
	if err != nil {
		t.Fatalf("compile schema: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join("..", "..", "configs", "tuning.yaml"))
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("yaml: %v", err)
	}
	// The validator wants JSON-shaped values.
	b, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("to json: %v", err)
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		t.Fatalf("from json: %v", err)
	}

	if err := schema.Validate(v); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestSchema_RejectsUnknownKeys(t *testing.T) {
	schema, err := jsonschema.Compile(filepath.Join("..", "..", "schemas", "tuning.schema.json"))
	if err != nil {
		t.Fatalf("compile schema: %v", err)
	}

	var v any
	_ = json.Unmarshal([]byte(`{
	  "energy": {"tick_admission":150,"step":50,"harvest_loop":400,"finishing_min":500,"finishing_max":700},
	  "thresholds": {"coins_to_save":12,"garbage_to_trade":5,"rock_to_trade":3,"rock_to_finish":8},
	  "bogus_knob": 1
	}`), &v)
	if err := schema.Validate(v); err == nil {
		t.Fatalf("unknown key accepted")
	}
}
