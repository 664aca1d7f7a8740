package internalcheck

import (
	"testing"

	"golang.org/x/tools/go/packages"
)

var checkedPackages = []string{
	"github.com/nostrkit/noscrypt-go/pkg/noscrypt",
	"github.com/nostrkit/noscrypt-go/pkg/noscrypt/hexcodec",
	"github.com/nostrkit/noscrypt-go/pkg/noscrypt/softengine",
	"github.com/nostrkit/noscrypt-go/pkg/nostr",
}

func loadChecked(t *testing.T) []*packages.Package {
	t.Helper()
	cfg := &packages.Config{
		Mode: packages.NeedSyntax | packages.NeedTypes | packages.NeedTypesInfo | packages.NeedFiles | packages.NeedName,
	}
	pkgs, err := packages.Load(cfg, checkedPackages...)
	if err != nil {
		t.Fatalf("load packages: %v", err)
	}
	if packages.PrintErrors(pkgs) > 0 {
		t.Fatalf("packages contain errors")
	}
	return pkgs
}
