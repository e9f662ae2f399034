package envelope

import (
	"net/http"
	"testing"
)

func TestHasFields(t *testing.T) {
	view := NewView(Request{
		Body: []byte(`{
			"type": "project.created",
			"detail-type": "ProjectCreated",
			"data": {"projectId": "p-1"}
		}`),
	})

	t.Run("matches when all fields present", func(t *testing.T) {
		d := HasFields("type", "data")
		if !d.Match(view) {
			t.Error("expected match")
		}
	})

	t.Run("matches nested fields", func(t *testing.T) {
		d := HasFields("type", "data.projectId")
		if !d.Match(view) {
			t.Error("expected match")
		}
	})

	t.Run("fails when any field missing", func(t *testing.T) {
		d := HasFields("type", "missing")
		if d.Match(view) {
			t.Error("expected no match")
		}
	})

	t.Run("matches with no fields (vacuous truth)", func(t *testing.T) {
		d := HasFields()
		if !d.Match(view) {
			t.Error("expected match for empty field list")
		}
	})
}

func TestFieldEquals(t *testing.T) {
	view := NewView(Request{
		Body: []byte(`{
			"type": "project.created",
			"count": 42
		}`),
	})

	t.Run("matches exact string value", func(t *testing.T) {
		d := FieldEquals("type", "project.created")
		if !d.Match(view) {
			t.Error("expected match")
		}
	})

	t.Run("fails on wrong value", func(t *testing.T) {
		d := FieldEquals("type", "project.deleted")
		if d.Match(view) {
			t.Error("expected no match")
		}
	})

	t.Run("fails on missing field", func(t *testing.T) {
		d := FieldEquals("missing", "value")
		if d.Match(view) {
			t.Error("expected no match")
		}
	})

	t.Run("fails on non-string field", func(t *testing.T) {
		d := FieldEquals("count", "42")
		if d.Match(view) {
			t.Error("expected no match for non-string field")
		}
	})
}

func TestHasHeader(t *testing.T) {
	header := http.Header{}
	header.Set("X-Event-Type", "system.ping")
	view := NewView(Request{Header: header, Body: []byte(`{}`)})

	t.Run("matches present header", func(t *testing.T) {
		d := HasHeader("X-Event-Type")
		if !d.Match(view) {
			t.Error("expected match")
		}
	})

	t.Run("fails on absent header", func(t *testing.T) {
		d := HasHeader("X-Missing")
		if d.Match(view) {
			t.Error("expected no match")
		}
	})

	t.Run("fails on empty header value", func(t *testing.T) {
		h := http.Header{}
		h.Set("X-Event-Type", "")
		v := NewView(Request{Header: h})

		d := HasHeader("X-Event-Type")
		if d.Match(v) {
			t.Error("expected no match for empty value")
		}
	})
}

func TestAnd(t *testing.T) {
	header := http.Header{}
	header.Set("X-Event-Type", "project.created")
	view := NewView(Request{
		Header: header,
		Body:   []byte(`{"type": "project.created", "data": {}}`),
	})

	t.Run("matches when all match", func(t *testing.T) {
		d := And(
			HasFields("type"),
			HasHeader("X-Event-Type"),
		)
		if !d.Match(view) {
			t.Error("expected match")
		}
	})

	t.Run("fails when any fails", func(t *testing.T) {
		d := And(
			HasFields("type"),
			FieldEquals("type", "project.deleted"),
		)
		if d.Match(view) {
			t.Error("expected no match")
		}
	})

	t.Run("matches with no discriminators (vacuous truth)", func(t *testing.T) {
		d := And()
		if !d.Match(view) {
			t.Error("expected match for empty And")
		}
	})
}

func TestOr(t *testing.T) {
	view := NewView(Request{
		Body: []byte(`{"type": "project.created"}`),
	})

	t.Run("matches when any matches", func(t *testing.T) {
		d := Or(
			HasHeader("X-Event-Type"),
			HasFields("type"),
		)
		if !d.Match(view) {
			t.Error("expected match")
		}
	})

	t.Run("fails when none match", func(t *testing.T) {
		d := Or(
			HasHeader("X-Event-Type"),
			HasFields("detail-type"),
		)
		if d.Match(view) {
			t.Error("expected no match")
		}
	})

	t.Run("fails with no discriminators", func(t *testing.T) {
		d := Or()
		if d.Match(view) {
			t.Error("expected no match for empty Or")
		}
	})
}
