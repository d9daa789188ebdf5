package logfields

import (
	"errors"
	"log/slog"
	"testing"
)

func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attrVal string
		attr    slog.Attr
	}{
		{"Stage", KeyStage, "text", Stage("text")},
		{"Group", KeyGroup, "Volume 1", Group("Volume 1")},
		{"Path", KeyPath, "/tmp/x", Path("/tmp/x")},
		{"Count", KeyCount, "3", Count(3)},
		{"Chapter", KeyChapter, "7", Chapter(7)},
		{"Format", KeyFormat, "mobi", Format("mobi")},
		{"State", KeyState, "declined", State("declined")},
		{"Error", KeyError, "boom", Error(errors.New("boom"))},
		{"NilError", KeyError, "", Error(nil)},
	}

	for _, tc := range cases {
		if tc.attr.Key != tc.attrKey {
			t.Fatalf("%s: expected key %s, got %s", tc.name, tc.attrKey, tc.attr.Key)
		}
		if got := tc.attr.Value.String(); got != tc.attrVal {
			t.Fatalf("%s: expected value %s, got %v", tc.name, tc.attrVal, got)
		}
	}
}
