package apppath

import "testing"

func TestClassifyPackageIdentifier(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/files/com.adobe.photoshop/session/work.tmp", Photoshop},
		{"/files/com.adobe.acrobat/cache/blob", Acrobat},
		{"/sync/com.adobe.aftereffects/comp/blob", AfterEffects},
		{"/sync/com.adobe.audition/take1/blob", Audition},
	}
	for _, tt := range tests {
		if got := Classify(tt.path); got != tt.want {
			t.Errorf("Classify(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestClassifyPackageBeatsExtension(t *testing.T) {
	// The package identifier is the most specific signal: it wins even when
	// the extension points at another application.
	got := Classify("/files/com.adobe.illustrator/assets/picture.psd")
	if got != Illustrator {
		t.Fatalf("expected %q, got %q", Illustrator, got)
	}
}

func TestClassifyNameSubstring(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/home/user/Photoshop Projects/banner.tmp", Photoshop},
		{"/work/after effects renders/out.mov", AfterEffects},
		{"/backups/InDesign/book.bak", InDesign},
	}
	for _, tt := range tests {
		if got := Classify(tt.path); got != tt.want {
			t.Errorf("Classify(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestClassifyLightroomMarkersBeforeExtension(t *testing.T) {
	// Catalog-layout literals outrank the generic PDF rule.
	if got := Classify("/catalogs/lrcat/exports/notes.pdf"); got != Lightroom {
		t.Fatalf("expected %q, got %q", Lightroom, got)
	}
	if got := Classify("/catalogs/Lightroom Classic/notes.pdf"); got != Lightroom {
		t.Fatalf("expected %q, got %q", Lightroom, got)
	}
}

func TestClassifyExtensions(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/u/work/poster.psd", Photoshop},
		{"/u/work/logo.aic", Illustrator},
		{"/u/work/cut.prproj", PremierePro},
		{"/u/work/title.aep", AfterEffects},
		{"/u/work/scene.dn", Dimension},
		{"/u/work/material.sbsar", Substance3D},
		{"/u/work/sketch.fresco", Fresco},
		{"/u/work/puppet.chproj", CharacterAnimator},
		{"/u/work/mix.sesx", Audition},
		{"/u/work/preset.prpreset", MediaEncoder},
		{"/u/work/grade.ircp", SpeedGrade},
		{"/u/work/ingest.plproj", Prelude},
		{"/u/work/story.icml", InCopy},
		{"/u/work/board.brd", Bridge},
		{"/u/work/catalog.lrcat-wal", Lightroom},
	}
	for _, tt := range tests {
		if got := Classify(tt.path); got != tt.want {
			t.Errorf("Classify(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestClassifyPDF(t *testing.T) {
	if got := Classify("/u/docs/thesis.pdf"); got != PDFDocument {
		t.Fatalf("expected %q, got %q", PDFDocument, got)
	}
	if got := Classify("/cloud-content/Adobe Scan/receipt.pdf"); got != Scan {
		t.Fatalf("expected %q, got %q", Scan, got)
	}
}

func TestClassifyCloudMarkers(t *testing.T) {
	tests := []string{
		"/assets/adobe-libraries/swatches/blob",
		"/adobe-libraries/shared/blob",
		"/cloud-content/misc/blob",
	}
	for _, p := range tests {
		if got := Classify(p); got != CloudStorage {
			t.Errorf("Classify(%q) = %q, want %q", p, got, CloudStorage)
		}
	}
}

func TestClassifyTotal(t *testing.T) {
	// No input fails; unmapped paths land in the catch-all, empty in Unknown.
	if got := Classify(""); got != Unknown {
		t.Fatalf("expected %q for empty path, got %q", Unknown, got)
	}
	if got := Classify("/u/misc/notes.bin"); got != OtherFiles {
		t.Fatalf("expected %q, got %q", OtherFiles, got)
	}
	if got := Classify("no-extension-at-all"); got != OtherFiles {
		t.Fatalf("expected %q, got %q", OtherFiles, got)
	}
}

func TestClassifyDeterministic(t *testing.T) {
	paths := []string{
		"", "/u/work/poster.psd", "/u/misc/notes.bin",
		"/files/com.adobe.illustrator/assets/picture.psd",
	}
	for _, p := range paths {
		first := Classify(p)
		second := Classify(p)
		if first != second {
			t.Fatalf("Classify(%q) not deterministic: %q then %q", p, first, second)
		}
	}
}

func TestCategoriesFixedOrder(t *testing.T) {
	cats := Categories()
	if len(cats) != 26 {
		t.Fatalf("expected 26 report categories, got %d", len(cats))
	}
	if cats[0] != Photoshop {
		t.Fatalf("expected %q first, got %q", Photoshop, cats[0])
	}
	if cats[len(cats)-1] != OtherFiles {
		t.Fatalf("expected %q last, got %q", OtherFiles, cats[len(cats)-1])
	}
	seen := make(map[string]bool, len(cats))
	for _, c := range cats {
		if seen[c] {
			t.Fatalf("duplicate category %q", c)
		}
		seen[c] = true
	}
}
