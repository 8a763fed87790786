package apppath

// Category labels. The order of Categories() is the report column order.
const (
	Photoshop         = "Adobe Photoshop"
	Illustrator       = "Adobe Illustrator"
	PremierePro       = "Adobe Premiere Pro"
	AfterEffects      = "Adobe After Effects"
	InDesign          = "Adobe InDesign"
	Lightroom         = "Adobe Lightroom"
	Acrobat           = "Adobe Acrobat"
	XD                = "Adobe XD"
	Dimension         = "Adobe Dimension"
	Animate           = "Adobe Animate"
	Substance3D       = "Adobe Substance 3D"
	Fresco            = "Adobe Fresco"
	CharacterAnimator = "Adobe Character Animator"
	Express           = "Adobe Express"
	Audition          = "Adobe Audition"
	MediaEncoder      = "Adobe Media Encoder"
	SpeedGrade        = "Adobe SpeedGrade"
	Prelude           = "Adobe Prelude"
	Dreamweaver       = "Adobe Dreamweaver"
	InCopy            = "Adobe InCopy"
	Bridge            = "Adobe Bridge"
	RoboHelp          = "Adobe RoboHelp"
	Scan              = "Adobe Scan"
	CloudStorage      = "Adobe Cloud Storage"
	PDFDocument       = "PDF Document"
	OtherFiles        = "Other Adobe Files"

	// Unknown is the sentinel for rows with no path value. It is not a
	// report column; it can only surface in per-user summaries.
	Unknown = "Unknown"
)

// Categories returns the full category list in fixed report order.
func Categories() []string {
	return []string{
		Photoshop,
		Illustrator,
		PremierePro,
		AfterEffects,
		InDesign,
		Lightroom,
		Acrobat,
		XD,
		Dimension,
		Animate,
		Substance3D,
		Fresco,
		CharacterAnimator,
		Express,
		Audition,
		MediaEncoder,
		SpeedGrade,
		Prelude,
		Dreamweaver,
		InCopy,
		Bridge,
		RoboHelp,
		Scan,
		CloudStorage,
		PDFDocument,
		OtherFiles,
	}
}

// rule is one (pattern, category) pair. Rule tables are ordered slices, not
// maps: matching is first-match-wins and the order carries the priority
// contract (most specific first).
type rule struct {
	pattern  string
	category string
}

// packageRules match reverse-domain package identifiers embedded in paths.
var packageRules = []rule{
	{"com.adobe.acrobat", Acrobat},
	{"com.adobe.photoshop", Photoshop},
	{"com.adobe.illustrator", Illustrator},
	{"com.adobe.premiere", PremierePro},
	{"com.adobe.aftereffects", AfterEffects},
	{"com.adobe.lightroom", Lightroom},
	{"com.adobe.xd", XD},
	{"com.adobe.indesign", InDesign},
	{"com.adobe.animate", Animate},
	{"com.adobe.audition", Audition},
	{"com.adobe.dreamweaver", Dreamweaver},
	{"com.adobe.express", Express},
}

// nameRules match bare application names anywhere in the path.
var nameRules = []rule{
	{"photoshop", Photoshop},
	{"illustrator", Illustrator},
	{"premiere", PremierePro},
	{"after effects", AfterEffects},
	{"lightroom", Lightroom},
	{"acrobat", Acrobat},
	{"xd", XD},
	{"indesign", InDesign},
	{"animate", Animate},
	{"express", Express},
}

// lightroomMarkers are catalog-layout literals that must be checked before
// extension lookup: they can appear inside paths whose extension would
// otherwise resolve to a different category.
var lightroomMarkers = []string{
	"/lightroom/",
	"lightroom classic",
	"/lrcat/",
}

var extensionRules = []rule{
	{".psd", Photoshop},
	{".psdc", Photoshop},
	{".psb", Photoshop},
	{".aic", Illustrator},
	{".ai", Illustrator},
	{".prproj", PremierePro},
	{".aep", AfterEffects},
	{".express", Express},
	{".indd", InDesign},
	{".idrc", InDesign},
	{".utxt", InDesign},
	{".idml", InDesign},
	{".acrobat", Acrobat},
	{".lrtemplate", Lightroom},
	{".lrcat", Lightroom},
	{".lrcat-wal", Lightroom},
	{".lrcat-lock", Lightroom},
	{".lrcat-shm", Lightroom},
	{".lrprev", Lightroom},
	{".xd", XD},
	{".xdc", XD},
	{".dn", Dimension},
	{".fla", Animate},
	{".sbsar", Substance3D},
	{".fresco", Fresco},
	{".chproj", CharacterAnimator},
	{".sesx", Audition},
	{".prpreset", MediaEncoder},
	{".ircp", SpeedGrade},
	{".plproj", Prelude},
	{".dw", Dreamweaver},
	{".icml", InCopy},
	{".brd", Bridge},
}

// scanMarker distinguishes scanned PDFs from plain documents.
const scanMarker = "/cloud-content/adobe scan/"

// cloudMarkers are sync-folder layouts that indicate cloud storage rather
// than any single application.
var cloudMarkers = []string{
	"/adobe-libraries/",
	"/assets/adobe-libraries/",
	"/cloud-content",
}
