package models

import (
	"encoding/json"
	"reflect"
	"testing"
)

func Test_ParseDay(t *testing.T) {
	type args struct {
		s string
	}
	tests := []struct {
		name    string
		args    args
		want    Day
		wantErr bool
	}{
		{name: "digit monday", args: args{s: "0"}, want: Monday},
		{name: "letter monday", args: args{s: "M"}, want: Monday},
		{name: "digit tuesday", args: args{s: "1"}, want: Tuesday},
		{name: "letter thursday", args: args{s: "R"}, want: Thursday},
		{name: "digit friday", args: args{s: "4"}, want: Friday},
		{name: "out of range digit", args: args{s: "5"}, wantErr: true},
		{name: "unknown letter", args: args{s: "X"}, wantErr: true},
		{name: "lowercase letter", args: args{s: "m"}, wantErr: true},
		{name: "empty", args: args{s: ""}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDay(tt.args.s)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseDay() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseDay() = %v, want %v", got, tt.want)
			}
		})
	}
}

func Test_ParseDay_equivalentSpellings(t *testing.T) {
	digits := []string{"0", "1", "2", "3", "4"}
	letters := []string{"M", "T", "W", "R", "F"}
	for i := range digits {
		fromDigit, err := ParseDay(digits[i])
		if err != nil {
			t.Fatalf("ParseDay(%q) error = %v", digits[i], err)
		}
		fromLetter, err := ParseDay(letters[i])
		if err != nil {
			t.Fatalf("ParseDay(%q) error = %v", letters[i], err)
		}
		if fromDigit != fromLetter {
			t.Errorf("ParseDay(%q) = %v, ParseDay(%q) = %v", digits[i], fromDigit, letters[i], fromLetter)
		}
	}
}

func Test_Day_JSON(t *testing.T) {
	days := []Day{Monday, Wednesday, Friday}
	raw, err := json.Marshal(days)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(raw) != `["Monday","Wednesday","Friday"]` {
		t.Errorf("Marshal() = %s", raw)
	}

	var back []Day
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !reflect.DeepEqual(days, back) {
		t.Errorf("round trip = %v, want %v", back, days)
	}

	if err := json.Unmarshal([]byte(`"Sunday"`), &back); err == nil {
		t.Error("Unmarshal(Sunday) expected error")
	}
}

func Test_Day_Letter(t *testing.T) {
	if Thursday.Letter() != "R" {
		t.Errorf("Thursday.Letter() = %v, want R", Thursday.Letter())
	}
	if Monday.Letter() != "M" {
		t.Errorf("Monday.Letter() = %v, want M", Monday.Letter())
	}
}
