package pptxraster

import (
	"strings"
	"testing"
)

func TestSlideCreateShapesAppendsInOrder(t *testing.T) {
	s := newSlide()
	s.CreateAutoShape()
	s.CreateLineShape()
	s.CreateRichTextShape()

	shapes := s.GetShapes()
	if len(shapes) != 3 {
		t.Fatalf("expected 3 shapes, got %d", len(shapes))
	}
	if _, ok := shapes[0].(*AutoShape); !ok {
		t.Errorf("expected shape 0 to be *AutoShape, got %T", shapes[0])
	}
	if _, ok := shapes[1].(*LineShape); !ok {
		t.Errorf("expected shape 1 to be *LineShape, got %T", shapes[1])
	}
	if _, ok := shapes[2].(*RichTextShape); !ok {
		t.Errorf("expected shape 2 to be *RichTextShape, got %T", shapes[2])
	}
}

func TestSlideRemoveShapeByIndex(t *testing.T) {
	s := newSlide()
	s.CreateAutoShape()
	s.CreateLineShape()

	if err := s.RemoveShape(0); err != nil {
		t.Fatalf("RemoveShape: %v", err)
	}
	if len(s.GetShapes()) != 1 {
		t.Fatalf("expected 1 shape left, got %d", len(s.GetShapes()))
	}
	if _, ok := s.GetShapes()[0].(*LineShape); !ok {
		t.Errorf("expected remaining shape to be *LineShape, got %T", s.GetShapes()[0])
	}

	if err := s.RemoveShape(99); err == nil {
		t.Error("expected error removing out-of-range index")
	}
}

func TestSlideRemoveShapeByPointer(t *testing.T) {
	s := newSlide()
	a := s.CreateAutoShape()
	s.CreateLineShape()

	if !s.RemoveShapeByPointer(a) {
		t.Fatal("expected RemoveShapeByPointer to find and remove the shape")
	}
	if len(s.GetShapes()) != 1 {
		t.Fatalf("expected 1 shape left, got %d", len(s.GetShapes()))
	}
	if s.RemoveShapeByPointer(a) {
		t.Error("expected second removal of the same pointer to fail")
	}
}

func TestSlideVisibilityDefaultsTrue(t *testing.T) {
	s := newSlide()
	if !s.IsVisible() {
		t.Error("expected new slide to default to visible")
	}
	s.SetVisible(false)
	if s.IsVisible() {
		t.Error("expected slide to be hidden after SetVisible(false)")
	}
}

func TestSlideTransitionRoundTrip(t *testing.T) {
	s := newSlide()
	if s.GetTransition() != nil {
		t.Error("expected new slide to have no transition")
	}
	tr := &Transition{Type: TransitionFade, Speed: TransitionSpeedMedium, Duration: 500}
	s.SetTransition(tr)
	got := s.GetTransition()
	if got.Type != TransitionFade || got.Speed != TransitionSpeedMedium || got.Duration != 500 {
		t.Errorf("transition not round-tripped correctly: %+v", got)
	}
}

func TestSlidePlaceholderLookup(t *testing.T) {
	s := newSlide()
	s.CreatePlaceholderShape(PlaceholderTitle).SetText("Title")
	s.CreatePlaceholderShape(PlaceholderBody).SetText("Body")

	if len(s.GetPlaceholders()) != 2 {
		t.Fatalf("expected 2 placeholders, got %d", len(s.GetPlaceholders()))
	}
	title := s.GetPlaceholder(PlaceholderTitle)
	if title == nil || title.GetPlaceholderType() != PlaceholderTitle {
		t.Fatal("expected to find title placeholder")
	}
	if s.GetPlaceholder(PlaceholderDate) != nil {
		t.Error("expected no date placeholder to be found")
	}
}

func TestSlideExtractTextAcrossShapeKinds(t *testing.T) {
	s := newSlide()
	s.CreateRichTextShape().CreateTextRun("rich text")
	s.CreatePlaceholderShape(PlaceholderTitle).SetText("placeholder text")
	tbl := s.CreateTableShape(1, 1)
	tbl.GetCell(0, 0).SetText("cell text")

	text := s.ExtractText()
	for _, want := range []string{"rich text", "placeholder text", "cell text"} {
		if !strings.Contains(text, want) {
			t.Errorf("expected extracted text to contain %q, got: %s", want, text)
		}
	}
}

func TestSlideCommentsRoundTrip(t *testing.T) {
	s := newSlide()
	author := NewCommentAuthor("Alice", "A")
	c := NewComment().SetAuthor(author).SetText("hello").SetPosition(10, 20)
	s.AddComment(c)

	comments := s.GetComments()
	if len(comments) != 1 {
		t.Fatalf("expected 1 comment, got %d", len(comments))
	}
	if comments[0].Text != "hello" || comments[0].PositionX != 10 || comments[0].PositionY != 20 {
		t.Errorf("comment fields not round-tripped: %+v", comments[0])
	}
	if comments[0].Author.Name != "Alice" || comments[0].Author.Initials != "A" {
		t.Errorf("comment author not round-tripped: %+v", comments[0].Author)
	}
}
