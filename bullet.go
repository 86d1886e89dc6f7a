package pptxraster

// Bullet describes the bullet or auto-numbering marker for a paragraph.
type Bullet struct {
	Type      BulletType
	Style     string // literal bullet character, for BulletTypeChar
	Font      string // bullet glyph font (e.g. "Wingdings"); empty uses the run font
	Color     *Color // bullet color override; nil inherits the run color
	Size      int    // bullet size as a percentage of the run's font size (100 = same size)
	StartAt   int    // first number in sequence, for BulletTypeNumeric/BulletTypeAutoNum
	NumFormat string // one of the NumFormatXxx constants
}

// BulletType identifies the kind of bullet marker a paragraph uses.
type BulletType int

const (
	BulletTypeNone BulletType = iota
	BulletTypeChar
	BulletTypeNumeric
	BulletTypeAutoNum
)

// NumFormat values correspond to OOXML a:buAutoNum "type" attribute values.
const (
	NumFormatArabicPeriod  = "arabicPeriod"
	NumFormatArabicParen   = "arabicParenR"
	NumFormatAlphaUcPeriod = "alphaUcPeriod"
	NumFormatAlphaLcPeriod = "alphaLcPeriod"
	NumFormatAlphaLcParen  = "alphaLcParenR"
	NumFormatRomanUcPeriod = "romanUcPeriod"
	NumFormatRomanLcPeriod = "romanLcPeriod"
)

// NewBullet creates a Bullet with no marker (BulletTypeNone).
func NewBullet() *Bullet {
	return &Bullet{Type: BulletTypeNone, Size: 100}
}

// SetCharBullet configures the bullet as a literal character, optionally
// drawn in a specific font (e.g. "Wingdings").
func (b *Bullet) SetCharBullet(char, font string) *Bullet {
	b.Type = BulletTypeChar
	b.Style = char
	b.Font = font
	return b
}

// SetNumericBullet configures the bullet as an auto-incrementing number
// using the given format, starting at startAt.
func (b *Bullet) SetNumericBullet(format string, startAt int) *Bullet {
	b.Type = BulletTypeNumeric
	b.NumFormat = format
	b.StartAt = startAt
	return b
}

// SetColor sets the bullet color override.
func (b *Bullet) SetColor(c Color) *Bullet {
	b.Color = &c
	return b
}

// SetSize sets the bullet size as a percentage of the run font size.
func (b *Bullet) SetSize(pct int) *Bullet {
	b.Size = pct
	return b
}
