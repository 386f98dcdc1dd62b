package feed

import "testing"

func TestParse_QuotedFields(t *testing.T) {
	tests := []struct {
		name string
		text string
		want [][]string
	}{
		{
			name: "plain rows",
			text: "a,b,c\n1,2,3",
			want: [][]string{{"1", "2", "3"}},
		},
		{
			name: "embedded comma inside quotes",
			text: "title,price\n\"Les Paul, Custom\",2499",
			want: [][]string{{"Les Paul, Custom", "2499"}},
		},
		{
			name: "escaped quote inside quotes",
			text: "title,price\n\"The \"\"Burst\"\" Reissue\",9999",
			want: [][]string{{`The "Burst" Reissue`, "9999"}},
		},
		{
			name: "newline inside quotes does not end the row",
			text: "title,notes\nSG,\"line one\nline two\"",
			want: [][]string{{"SG", "line one\nline two"}},
		},
		{
			name: "crlf row boundaries",
			text: "title,price\r\nSG,1999\r\nExplorer,1799\r\n",
			want: [][]string{{"SG", "1999"}, {"Explorer", "1799"}},
		},
		{
			name: "comma and escaped quote round-trip in one cell",
			text: "title\n\"6.5\"\", satin, relic\"",
			want: [][]string{{`6.5", satin, relic`}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := Parse(tt.text, HeaderPresent)
			if len(rows) != len(tt.want) {
				t.Fatalf("Parse() returned %d rows, want %d", len(rows), len(tt.want))
			}
			for i, wantCells := range tt.want {
				if len(rows[i].Cells) != len(wantCells) {
					t.Fatalf("row %d has %d cells, want %d", i, len(rows[i].Cells), len(wantCells))
				}
				for j, want := range wantCells {
					if rows[i].Cells[j] != want {
						t.Errorf("row %d cell %d = %q, want %q", i, j, rows[i].Cells[j], want)
					}
				}
			}
		})
	}
}

func TestParse_UnterminatedQuoteFlushesPartialRow(t *testing.T) {
	rows := Parse("title,price\nSG,1999\n\"Explorer,1799", HeaderPresent)

	if len(rows) != 2 {
		t.Fatalf("Parse() returned %d rows, want 2", len(rows))
	}
	// The accumulated text up to EOF is flushed as the final row.
	if rows[1].Cells[0] != "Explorer,1799" {
		t.Errorf("flushed cell = %q, want %q", rows[1].Cells[0], "Explorer,1799")
	}
}

func TestParse_DropsBlankRows(t *testing.T) {
	rows := Parse("title,price\nSG,1999\n,,\n   , \nExplorer,1799\n", HeaderPresent)

	if len(rows) != 2 {
		t.Fatalf("Parse() returned %d rows, want 2 (blank rows dropped)", len(rows))
	}
	if rows[0].Cells[0] != "SG" || rows[1].Cells[0] != "Explorer" {
		t.Errorf("unexpected rows after blank filtering: %v", rows)
	}
}

func TestParse_HeaderLookup(t *testing.T) {
	rows := Parse("Title , PRICE\nSG,1999", HeaderPresent)

	if len(rows) != 1 {
		t.Fatalf("Parse() returned %d rows, want 1", len(rows))
	}
	if got := rows[0].Field("title"); got != "SG" {
		t.Errorf("Field(title) = %q, want SG", got)
	}
	if got := rows[0].Field("price"); got != "1999" {
		t.Errorf("Field(price) = %q, want 1999", got)
	}
	if got := rows[0].Field("missing"); got != "" {
		t.Errorf("Field(missing) = %q, want empty", got)
	}
}

func TestParse_ShortRowYieldsEmptyFields(t *testing.T) {
	rows := Parse("title,price,vendor\nSG,1999", HeaderPresent)

	if len(rows) != 1 {
		t.Fatalf("Parse() returned %d rows, want 1", len(rows))
	}
	if got := rows[0].Field("vendor"); got != "" {
		t.Errorf("Field(vendor) = %q, want empty for short row", got)
	}
}

func TestParse_HeaderAutoDetection(t *testing.T) {
	t.Run("first row of column names is a header", func(t *testing.T) {
		rows := Parse("title,url,price\nSG,https://x.com/p/sg,1999", HeaderAuto)
		if len(rows) != 1 {
			t.Fatalf("Parse() returned %d rows, want 1", len(rows))
		}
		if rows[0].Fields == nil {
			t.Fatal("expected header fields to be resolved")
		}
	})

	t.Run("first row with a URL cell is data", func(t *testing.T) {
		rows := Parse("https://x.com/p/sg,SG,1999\nhttps://x.com/p/lp,Les Paul,2499", HeaderAuto)
		if len(rows) != 2 {
			t.Fatalf("Parse() returned %d rows, want 2 (headerless)", len(rows))
		}
		if rows[0].Fields != nil {
			t.Error("headerless rows must stay positional")
		}
	})

	t.Run("first row with a price cell is data", func(t *testing.T) {
		rows := Parse("SG,$1,999.00\nLes Paul,2499", HeaderAuto)
		if rows[0].Fields != nil {
			t.Error("headerless rows must stay positional")
		}
	})

	t.Run("forced headerless keeps the first row", func(t *testing.T) {
		rows := Parse("title,price\nSG,1999", HeaderAbsent)
		if len(rows) != 2 {
			t.Fatalf("Parse() returned %d rows, want 2", len(rows))
		}
	})
}

func TestParse_EmptyInput(t *testing.T) {
	if rows := Parse("", HeaderAuto); rows != nil {
		t.Errorf("Parse(empty) = %v, want nil", rows)
	}
	if rows := Parse("\n\n  \n", HeaderAuto); len(rows) != 0 {
		t.Errorf("Parse(blank lines) returned %d rows, want 0", len(rows))
	}
}
