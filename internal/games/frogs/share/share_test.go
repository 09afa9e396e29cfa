package share_test

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/frogpond/internal/games/frogs/level"
	"github.com/vovakirdan/frogpond/internal/games/frogs/levels"
	"github.com/vovakirdan/frogpond/internal/games/frogs/share"
)

func builtin(t *testing.T, id string) *level.Level {
	t.Helper()
	def, err := levels.Builtin().LoadByID(id)
	if err != nil {
		t.Fatalf("LoadByID(%s): %v", id, err)
	}
	return def.Level
}

// rawCode encodes an arbitrary JSON value the way share codes are encoded.
func rawCode(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return base64.RawURLEncoding.EncodeToString(data)
}

// snapshotMap returns a valid snapshot of the pond level as a generic map.
func snapshotMap(t *testing.T) map[string]any {
	t.Helper()
	code, err := share.EncodeLevel(builtin(t, "01-pond"), 7)
	if err != nil {
		t.Fatal(err)
	}
	data, _ := base64.RawURLEncoding.DecodeString(code)
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	return m
}

func TestRoundTrip(t *testing.T) {
	for _, id := range []string{"01-pond", "02-heart", "03-mushroom"} {
		t.Run(id, func(t *testing.T) {
			l := builtin(t, id)
			snap, err := share.FromLevel(l, 4294967295)
			if err != nil {
				t.Fatal(err)
			}
			code, err := share.Encode(snap)
			if err != nil {
				t.Fatal(err)
			}
			if strings.ContainsAny(code, "+/=") {
				t.Errorf("code is not URL-safe: %s", code)
			}

			got, err := share.Decode(code)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if !reflect.DeepEqual(*got, snap) {
				t.Errorf("decoded snapshot differs:\n got %+v\nwant %+v", *got, snap)
			}
		})
	}
}

func TestRehydrateReproducesGame(t *testing.T) {
	l := builtin(t, "03-mushroom")
	code, err := share.EncodeLevel(l, 2024)
	if err != nil {
		t.Fatal(err)
	}

	snap, err := share.Decode(code)
	if err != nil {
		t.Fatal(err)
	}
	again, err := snap.Rehydrate()
	if err != nil {
		t.Fatalf("Rehydrate: %v", err)
	}
	if !reflect.DeepEqual(again.Rules, l.Rules) {
		t.Errorf("rules differ: %+v vs %+v", again.Rules, l.Rules)
	}

	a, err := level.NewGame(l, 2024)
	if err != nil {
		t.Fatal(err)
	}
	b, err := level.NewGame(again, snap.Seed)
	if err != nil {
		t.Fatal(err)
	}
	if a.Hash() != b.Hash() {
		t.Error("rehydrated level generates a different game")
	}
}

func TestDecodeRejectsBadCodes(t *testing.T) {
	mutate := func(f func(m map[string]any)) string {
		m := snapshotMap(t)
		f(m)
		return rawCode(t, m)
	}

	tests := []struct {
		name string
		code string
	}{
		{"empty", ""},
		{"not base64", "!!!***"},
		{"not json", base64.RawURLEncoding.EncodeToString([]byte("hello"))},
		{"wrong version", mutate(func(m map[string]any) { m["version"] = 2 })},
		{"missing seed", mutate(func(m map[string]any) { delete(m, "seed") })},
		{"negative seed", mutate(func(m map[string]any) { m["seed"] = -1 })},
		{"fractional seed", mutate(func(m map[string]any) { m["seed"] = 1.5 })},
		{"seed too large", mutate(func(m map[string]any) { m["seed"] = 4294967296.0 })},
		{"string seed", mutate(func(m map[string]any) { m["seed"] = "7" })},
		{"missing level", mutate(func(m map[string]any) { delete(m, "level") })},
		{"zero width", mutate(func(m map[string]any) { m["level"].(map[string]any)["width"] = 0 })},
		{"overflowing size", mutate(func(m map[string]any) {
			lv := m["level"].(map[string]any)
			lv["width"] = 4611686018427387905
			lv["height"] = 4
			lv["pixelData"] = base64.RawURLEncoding.EncodeToString([]byte{0x80, 0x80, 0x80, 0x80})
		})},
		{"width too large", mutate(func(m map[string]any) {
			lv := m["level"].(map[string]any)
			lv["width"] = 1 << 20
			lv["height"] = 1
		})},
		{"short pixel data", mutate(func(m map[string]any) {
			m["level"].(map[string]any)["pixelData"] = base64.RawURLEncoding.EncodeToString([]byte{0x80, 0x80})
		})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap, err := share.Decode(tt.code)
			if snap != nil {
				t.Errorf("Decode returned %+v, want nil", snap)
			}
			if !errors.Is(err, share.ErrInvalidCode) {
				t.Errorf("error = %v, want ErrInvalidCode", err)
			}
		})
	}
}

func TestDecodeAcceptsPadding(t *testing.T) {
	code, err := share.EncodeLevel(builtin(t, "01-pond"), 3)
	if err != nil {
		t.Fatal(err)
	}
	padded := code + strings.Repeat("=", (4-len(code)%4)%4)
	if _, err := share.Decode("  " + padded + "\n"); err != nil {
		t.Errorf("padded code rejected: %v", err)
	}
}

func TestRehydrateRejectsBadPalette(t *testing.T) {
	code, err := share.EncodeLevel(builtin(t, "01-pond"), 3)
	if err != nil {
		t.Fatal(err)
	}
	snap, err := share.Decode(code)
	if err != nil {
		t.Fatal(err)
	}

	// Index 5 in a two-colour palette
	bad := *snap
	data := make([]byte, bad.Level.Width*bad.Level.Height)
	for i := range data {
		data[i] = 0x80 | 5
	}
	bad.Level.PixelData = base64.RawURLEncoding.EncodeToString(data)
	if _, err := bad.Rehydrate(); err == nil {
		t.Error("out of range palette index should fail")
	}

	dup := *snap
	dup.Level.Palette = []level.RGB{{1, 1, 1}, {1, 1, 1}}
	if _, err := dup.Rehydrate(); err == nil {
		t.Error("duplicate palette colours should fail")
	}
}

func TestRehydrateRejectsBadSize(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{"overflowing product", 4611686018427387905, 4},
		{"negative", -4, -1},
		{"zero height", 4, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := share.Snapshot{
				Version: share.Version,
				Seed:    1,
				Level: share.SerializedLevel{
					Width:         tt.width,
					Height:        tt.height,
					PixelsPerSize: 1,
					Palette:       []level.RGB{{10, 200, 30}},
					PixelData:     base64.RawURLEncoding.EncodeToString([]byte{0x80, 0x80, 0x80, 0x80}),
				},
			}
			if l, err := snap.Rehydrate(); err == nil {
				t.Errorf("Rehydrate = %+v, want an error", l)
			}
		})
	}
}

func TestFromLevelRejectsUnknownColour(t *testing.T) {
	l := builtin(t, "01-pond")
	bad := *l
	bad.Pixels = l.Grid().Pixels
	bad.Pixels[0][0].ColorID = "9-9-9"

	if _, err := share.FromLevel(&bad, 1); err == nil {
		t.Error("pixel colour outside the palette should fail")
	}
	if _, err := share.FromLevel(l, 1); err != nil {
		t.Errorf("original level: %v", err)
	}
}

func TestExtractShareCode(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"abc123", "abc123"},
		{"  abc123\n", "abc123"},
		{"https://frogpond.example/play?share=xyz_-9", "xyz_-9"},
		{"https://frogpond.example/play?level=2&share=q", "q"},
		{"https://frogpond.example/play", "https://frogpond.example/play"},
	}
	for _, tt := range tests {
		if got := share.ExtractShareCode(tt.input); got != tt.want {
			t.Errorf("ExtractShareCode(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestShareURL(t *testing.T) {
	code, err := share.EncodeLevel(builtin(t, "02-heart"), 11)
	if err != nil {
		t.Fatal(err)
	}
	u, err := share.ShareURL("https://frogpond.example/play?lang=en", code)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(u, "lang=en") {
		t.Errorf("url lost existing query: %s", u)
	}
	if got := share.ExtractShareCode(u); got != code {
		t.Errorf("code did not survive the url round trip")
	}
}
