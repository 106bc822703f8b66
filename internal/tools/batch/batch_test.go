package batch

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
)

func TestParseStringOrArray(t *testing.T) {
	tests := []struct {
		name    string
		param   interface{}
		want    []string
		wantErr string
	}{
		{
			name:  "single string",
			param: "msg1",
			want:  []string{"msg1"},
		},
		{
			name:  "array of strings",
			param: []interface{}{"msg1", "msg2", "msg3"},
			want:  []string{"msg1", "msg2", "msg3"},
		},
		{
			name:    "nil",
			param:   nil,
			wantErr: "messageIds is required",
		},
		{
			name:    "empty string",
			param:   "",
			wantErr: "messageIds cannot be empty",
		},
		{
			name:    "empty array",
			param:   []interface{}{},
			wantErr: "messageIds cannot be empty",
		},
		{
			name:    "array with non-string",
			param:   []interface{}{"msg1", 42},
			wantErr: "messageIds[1] must be a string",
		},
		{
			name:    "array with empty string",
			param:   []interface{}{"msg1", ""},
			wantErr: "messageIds[1] cannot be empty",
		},
		{
			name:    "wrong type",
			param:   42,
			wantErr: "must be a string or array of strings",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStringOrArray(tt.param, "messageIds")
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("ParseStringOrArray() error = nil, want %q", tt.wantErr)
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("ParseStringOrArray() error = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseStringOrArray() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseStringOrArray() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProcessBatch(t *testing.T) {
	results := ProcessBatch([]string{"a", "b", "c"}, func(id string) (string, error) {
		if id == "b" {
			return "", errors.New("not found")
		}
		return fmt.Sprintf("%s done", id), nil
	})

	if len(results) != 3 {
		t.Fatalf("len(results) = %d, want 3", len(results))
	}
	if results[0].Status != "success" || results[0].Result != "a done" {
		t.Errorf("results[0] = %+v", results[0])
	}
	if results[1].Status != "error" || results[1].Error != "not found" {
		t.Errorf("results[1] = %+v", results[1])
	}
	if results[2].Status != "success" {
		t.Errorf("results[2] = %+v", results[2])
	}
}

func TestFormatResults(t *testing.T) {
	results := []Result{
		{ID: "a", Status: "success", Result: "ok"},
		{ID: "b", Status: "error", Error: "boom"},
	}

	var br BatchResult
	if err := json.Unmarshal([]byte(FormatResults(results)), &br); err != nil {
		t.Fatalf("FormatResults() produced invalid JSON: %v", err)
	}

	if br.Total != 2 {
		t.Errorf("Total = %d, want 2", br.Total)
	}
	if br.Successful != 1 {
		t.Errorf("Successful = %d, want 1", br.Successful)
	}
	if br.Failed != 1 {
		t.Errorf("Failed = %d, want 1", br.Failed)
	}
	if len(br.Results) != 2 {
		t.Errorf("len(Results) = %d, want 2", len(br.Results))
	}
}
