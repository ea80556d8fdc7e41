package querybuilder

import "testing"

func TestSelectQuery(t *testing.T) {
	query, args, err := Select("*").
		From("matches").
		Where(
			Eq("competition_public_id", "idn-liga-1-2026"),
			IsNull("deleted_at"),
		).
		OrderBy("match_date", "id").
		ToSQL()
	if err != nil {
		t.Fatalf("build select: %v", err)
	}

	want := "SELECT * FROM matches WHERE competition_public_id = $1 AND deleted_at IS NULL ORDER BY match_date, id"
	if query != want {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, query)
	}
	if len(args) != 1 || args[0] != "idn-liga-1-2026" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectQueryLimit(t *testing.T) {
	query, _, err := Select("public_id").From("teams").Limit(5).ToSQL()
	if err != nil {
		t.Fatalf("build select: %v", err)
	}
	if want := "SELECT public_id FROM teams LIMIT 5"; query != want {
		t.Fatalf("unexpected query: %s", query)
	}
}

func TestSelectQueryRequiresTable(t *testing.T) {
	if _, _, err := Select("*").ToSQL(); err == nil {
		t.Fatal("expected an error for a select without a table")
	}
}

func TestInCondition(t *testing.T) {
	query, args, err := Select("*").
		From("teams").
		Where(In("public_id", []any{"idn-garuda", "idn-persija"})).
		ToSQL()
	if err != nil {
		t.Fatalf("build select: %v", err)
	}
	if want := "SELECT * FROM teams WHERE public_id IN ($1, $2)"; query != want {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInConditionEmptyMatchesNothing(t *testing.T) {
	query, args, err := Select("*").
		From("teams").
		Where(In("public_id", nil)).
		ToSQL()
	if err != nil {
		t.Fatalf("build select: %v", err)
	}
	if want := "SELECT * FROM teams WHERE FALSE"; query != want {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 0 {
		t.Fatalf("expected no args, got %+v", args)
	}
}

func TestUpdateQuery(t *testing.T) {
	query, args, err := Update("matches").
		Set("status", "Finished").
		Set("home_score", 2).
		SetExpr("updated_at", "NOW()").
		Where(
			Eq("public_id", "match-idn-liga-1-2026-idn-garuda-idn-persija"),
			IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		t.Fatalf("build update: %v", err)
	}

	want := "UPDATE matches SET status = $1, home_score = $2, updated_at = NOW() " +
		"WHERE public_id = $3 AND deleted_at IS NULL"
	if query != want {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, query)
	}
	if len(args) != 3 || args[0] != "Finished" || args[1] != 2 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateQueryRequiresAssignments(t *testing.T) {
	if _, _, err := Update("matches").Where(Eq("public_id", "m1")).ToSQL(); err == nil {
		t.Fatal("expected an error for an update without assignments")
	}
}

func TestInsertModel(t *testing.T) {
	row := struct {
		ID      string `db:"public_id"`
		Name    string `db:"name"`
		Country string `db:"country"`
		Skip    string `db:"-"`
		hidden  string
	}{ID: "idn-garuda", Name: "Garuda FC", Country: "Indonesia", Skip: "x", hidden: "y"}

	query, args, err := InsertModel("teams", row)
	if err != nil {
		t.Fatalf("build insert: %v", err)
	}
	if want := "INSERT INTO teams (public_id, name, country) VALUES ($1, $2, $3)"; query != want {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 3 || args[0] != "idn-garuda" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModelRejectsNonStruct(t *testing.T) {
	if _, _, err := InsertModel("teams", 42); err == nil {
		t.Fatal("expected an error for a non-struct model")
	}
}
