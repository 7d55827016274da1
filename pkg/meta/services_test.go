package meta

import "testing"

func TestServiceFlagsHas(t *testing.T) {
	flags := NodeNetwork | ServiceFlags(0x80)

	if !flags.Has(NodeNetwork) {
		t.Errorf("expected flags to have NodeNetwork")
	}
	if ServiceFlags(0).Has(NodeNetwork) {
		t.Errorf("expected empty flags not to have NodeNetwork")
	}
	if !flags.Has(ServiceFlags(0x80)) {
		t.Errorf("expected unrecognized bit to be preserved")
	}
}
