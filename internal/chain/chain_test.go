package chain

import "testing"

func TestExplorerTxURL(t *testing.T) {
	cases := []struct {
		id   int64
		want string
	}{
		{ArbitrumSepoliaID, "https://sepolia.arbiscan.io/tx/0xabc"},
		{ZGMainnetID, "https://chainscan.0g.ai/tx/0xabc"},
		{ZGTestnetID, "https://chainscan-newton.0g.ai/tx/0xabc"},
		{1, "https://sepolia.arbiscan.io/tx/0xabc"},
	}
	for _, c := range cases {
		if got := ExplorerTxURL(c.id, "0xabc"); got != c.want {
			t.Fatalf("ExplorerTxURL(%d) = %q, want %q", c.id, got, c.want)
		}
	}
}

func TestKnown_sortedAndComplete(t *testing.T) {
	chains := Known()
	if len(chains) != 3 {
		t.Fatalf("len=%d, want 3", len(chains))
	}
	for i := 1; i < len(chains); i++ {
		if chains[i-1].ID >= chains[i].ID {
			t.Fatalf("Known() not sorted: %d before %d", chains[i-1].ID, chains[i].ID)
		}
	}
	c, ok := Lookup(ZGTestnetID)
	if !ok || c.CurrencySymbol != "A0GI" || c.Decimals != 18 {
		t.Fatalf("Lookup(ZGTestnetID) = %+v, %v", c, ok)
	}
	if _, ok := DefaultContractAddress(5); ok {
		t.Fatalf("unknown chain should have no default contract")
	}
}
