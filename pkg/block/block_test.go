package block

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeItem(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		text   string
		marker string
		want   string
		wantOK bool
	}{
		{name: "empty", text: "", marker: "→", wantOK: false},
		{name: "blank", text: "   \t ", marker: "→", wantOK: false},
		{name: "plain gets marker", text: "3 packages audited", marker: "→", want: "→ 3 packages audited", wantOK: true},
		{name: "trimmed before marking", text: "  spaced  ", marker: "•", want: "• spaced", wantOK: true},
		{name: "check glyph kept", text: "✔ done", marker: "→", want: "✔ done", wantOK: true},
		{name: "cross glyph kept", text: "❌ broken", marker: "•", want: "❌ broken", wantOK: true},
		{name: "bullet glyph kept", text: " • already", marker: "→", want: "• already", wantOK: true},
		{name: "dash kept", text: "- listed", marker: "→", want: "- listed", wantOK: true},
		{name: "no marker", text: "bare", marker: "", want: "bare", wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := NormalizeItem(tt.text, tt.marker)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeItem_Idempotent(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"plain", "  padded ", "✔ done", "→ next", "• warn", "- dash"} {
		once, ok := NormalizeItem(in, "→")
		assert.True(t, ok)
		twice, ok := NormalizeItem(once, "→")
		assert.True(t, ok)
		assert.Equal(t, once, twice, "normalizing %q twice", in)
	}
}

func TestBullets_DropsBlankValues(t *testing.T) {
	t.Parallel()

	got := Bullets([]string{"one", "", "  ", "• two"}, "•")
	assert.Equal(t, []string{"• one", "• two"}, got)
	assert.Empty(t, Bullets(nil, "→"))
}

func TestCreate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		spec Spec
		want string
	}{
		{
			name: "default headline and footer",
			spec: Spec{},
			want: "✔ Command completed successfully.\n\nUse --full for detailed logs.",
		},
		{
			name: "items normalized with default marker",
			spec: Spec{
				Headline: "✔ Install complete",
				Items:    []string{"audited 3 packages in 1s", "", "• 2 deprecated packages"},
			},
			want: "✔ Install complete\n→ audited 3 packages in 1s\n• 2 deprecated packages\n\nUse --full for detailed logs.",
		},
		{
			name: "custom footer",
			spec: Spec{Headline: "❌ Command failed", Footer: Footer("Use --full to inspect the full log.")},
			want: "❌ Command failed\n\nUse --full to inspect the full log.",
		},
		{
			name: "empty footer omitted",
			spec: Spec{Headline: "  ✔ Quiet  ", Items: []string{"x"}, Footer: Footer("")},
			want: "✔ Quiet\n→ x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if diff := cmp.Diff(tt.want, Create(tt.spec)); diff != "" {
				t.Errorf("Create() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHeadline(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "✔ one", Headline("✔ one\n→ two"))
	assert.Equal(t, "single", Headline("single"))
	assert.Equal(t, "", Headline(""))
}
