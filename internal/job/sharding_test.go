package job

import (
	"strconv"
	"testing"
)

func TestShardLabel_DeterministicAndRange(t *testing.T) {
	t.Parallel()
	keys := []string{"", Key("app", "main"), Key("app", "other"), "some-longer-id"}
	for _, k := range keys {
		got1 := ShardLabel(k)
		got2 := ShardLabel(k)
		if got1 != got2 {
			t.Fatalf("ShardLabel not deterministic for %q: %s vs %s", k, got1, got2)
		}
		n, err := strconv.Atoi(got1)
		if err != nil || n < 0 || n > 31 {
			t.Fatalf("ShardLabel out of range for %q: %s", k, got1)
		}
	}
}

func TestKey(t *testing.T) {
	t.Parallel()
	if got := Key("books", "main"); got != "books/main" {
		t.Fatalf("unexpected key %q", got)
	}
}
