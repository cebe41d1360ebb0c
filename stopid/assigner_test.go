package stopid

import (
	"errors"
	"strconv"
	"testing"
)

func newTestAssigner(t *testing.T) *Assigner {
	t.Helper()
	a, err := NewAssigner(DefaultTables())
	if err != nil {
		t.Fatalf("NewAssigner: %v", err)
	}
	return a
}

func TestAssign_NumericCodes(t *testing.T) {
	a := newTestAssigner(t)

	for _, code := range []string{"1", "0218", "1206", "2206", "9999", "45001"} {
		t.Run(code, func(t *testing.T) {
			want, _ := strconv.Atoi(code)
			got, err := a.Assign(code, "STC_F_Stop"+code, "Some Stop")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if int(got) != want {
				t.Errorf("Assign(%q) = %d, want %d", code, got, want)
			}
		})
	}
}

func TestAssign_PrefixVariantsAreStable(t *testing.T) {
	a := newTestAssigner(t)

	variants := []struct {
		name string
		code string
		id   string
	}{
		{"plain stop code", "0218", "whatever"},
		{"zero code with STC_F_Stop id", "0", "STC_F_Stop0218"},
		{"empty code with STC_F_Stop id", "", "STC_F_Stop0218"},
		{"2015 release", "0", "STC_F2015_Stop0218"},
		{"2015 short form", "0", "STC_F2015_Sto0218"},
		{"2016 release", "0", "STC_S_2016_Stop0218"},
		{"2017 release", "0", "STC_W2017Stop0218"},
		{"underscore only", "0", "STC_F_0218"},
		{"Sto code", "Sto0218", "ignored"},
		{"lower case prefix", "0", "stc_f_stop0218"},
	}

	for _, tt := range variants {
		t.Run(tt.name, func(t *testing.T) {
			got, err := a.Assign(tt.code, tt.id, "Collier Rd")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != 218 {
				t.Errorf("Assign(%q, %q) = %d, want 218", tt.code, tt.id, got)
			}
		})
	}
}

func TestAssign_Classification(t *testing.T) {
	a := newTestAssigner(t)

	tests := []struct {
		name string
		code string
		id   string
		stop string
		want ID
	}{
		{"landmark DTT", "DTT", "", "Downtown Terminal", 100000},
		{"landmark from id", "0", "STC_F_BRU", "Brock University", 100006},
		{"landmark CER", "CER", "", "", 100016},
		{"locality CD", "CD12", "", "", 30012},
		{"locality NOTL", "NOTL7", "", "", 140007},
		{"locality SCWE", "SCWE100", "", "", 190100},
		{"street pair", "DnklCrlt", "", "Dunkeld & Carlton", 400308},
		{"street pair from id", "0", "STC_S_2016_PelmGndl", "", 1600703},
		{"street pair with space", "Pen Cntr", "", "Pen Centre", 1610304},
		{"towpath", "CrmtTowp", "", "", 342001},
		{"longer prefix wins", "GenvMall", "", "", 711301},
		{"shorter prefix", "GenMall", "", "", 701301},
		{"StPW before StP", "StPWLake", "", "", 1951200},
		{"name rule", "XyzMain", "", "Ontario St at Main", 1501300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := a.Assign(tt.code, tt.id, tt.stop)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Assign(%q, %q) = %d, want %d", tt.code, tt.id, got, tt.want)
			}
		})
	}
}

func TestAssign_Unclassified(t *testing.T) {
	a := newTestAssigner(t)

	tests := []struct {
		name  string
		code  string
		id    string
		stage Stage
	}{
		{"unknown prefix", "Zzzz", "", StagePrefix},
		{"unknown suffix", "DnklZzzz", "", StageSuffix},
		{"digits without locality", "AB12", "", StagePrefix},
		{"locality digits overflow", "CD12345", "", StageLocality},
		{"nothing at all", "0", "", StagePrefix},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := a.Assign(tt.code, tt.id, "")
			if err == nil {
				t.Fatal("expected an error")
			}
			if !errors.Is(err, ErrUnclassifiedStopCode) {
				t.Fatalf("expected ErrUnclassifiedStopCode, got %v", err)
			}
			var uerr *UnclassifiedStopCodeError
			if !errors.As(err, &uerr) {
				t.Fatalf("expected *UnclassifiedStopCodeError, got %T", err)
			}
			if uerr.Stage != tt.stage {
				t.Errorf("stage = %q, want %q", uerr.Stage, tt.stage)
			}
		})
	}
}

func TestAssignAll_Injective(t *testing.T) {
	a := newTestAssigner(t)

	stops := []Stop{
		{ID: "STC_F_Stop0218", Code: "0218"},
		{ID: "STC_F_Stop0228", Code: "0"},
		{ID: "STC_F_Stop0470", Code: "Sto0470"},
		{ID: "STC_F_DTT", Code: "DTT"},
		{ID: "STC_F_BRU", Code: "0"},
		{ID: "STC_F_FVM", Code: "FVM"},
		{ID: "STC_F_CD12", Code: "CD12"},
		{ID: "STC_F_NOTL12", Code: "NOTL12"},
		{ID: "STC_F_DnklCrlt", Code: "0"},
		{ID: "STC_F_CrmtTowp", Code: "0"},
		{ID: "STC_F_PelmGndl", Code: "0"},
		{ID: "STC_F_Pen Cntr", Code: "0"},
		{ID: "STC_F_GlndCmps", Code: "0"},
		{ID: "STC_F_MacTLout", Code: "0"},
		{ID: "STC_F_NiFlsAll", Code: "0"},
		{ID: "STC_F_TwnlQuen", Code: "0"},
		{ID: "STC_F_OrmdRich", Code: "0"},
		{ID: "STC_F_AlnbgLyn", Code: "0"},
		{ID: "STC_F_GrdgGlmr", Code: "0"},
	}

	ids, err := a.AssignAll(stops)
	if err != nil {
		t.Fatalf("AssignAll: %v", err)
	}

	seen := map[ID]bool{}
	for _, id := range ids {
		seen[id] = true
	}
	if len(seen) != len(stops) {
		t.Errorf("got %d distinct ids for %d stops", len(seen), len(stops))
	}
	t.Logf("✓ %d stops mapped to %d distinct ids", len(stops), len(seen))
}

func TestAssignAll_Collision(t *testing.T) {
	a := newTestAssigner(t)

	_, err := a.AssignAll([]Stop{
		{ID: "a", Code: "30012"},
		{ID: "b", Code: "CD12"},
	})
	if !errors.Is(err, ErrStopIDCollision) {
		t.Fatalf("expected ErrStopIDCollision, got %v", err)
	}
}

func TestPublicCode(t *testing.T) {
	a := newTestAssigner(t)

	tests := []struct {
		code string
		id   string
		want string
	}{
		{"0", "STC_F_Stop1234", "1234"},
		{"0", "STC_F2015_Stop1234", "1234"},
		{"0", "STC_F2015_Sto1234", "1234"},
		{"0", "STC_S_DTT", ""},
		{"Sto55", "", "55"},
		{"DTT", "", ""},
		{"321", "", "321"},
		{"", "", ""},
	}

	for _, tt := range tests {
		if got := a.PublicCode(tt.code, tt.id); got != tt.want {
			t.Errorf("PublicCode(%q, %q) = %q, want %q", tt.code, tt.id, got, tt.want)
		}
	}
}
