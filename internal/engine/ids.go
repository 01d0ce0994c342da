package engine

import "github.com/landsuite/plot-erp/internal/utils"

func newID(prefix string) string { return utils.NewID(prefix) }
