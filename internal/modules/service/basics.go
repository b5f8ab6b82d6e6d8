package service

import (
	"strconv"

	"github.com/unidash/unidash/internal/modules/model"
	"github.com/unidash/unidash/internal/pkg/cellvalue"
)

// defaultViewColumns are the columns a new view starts with when it is not
// copied from an existing one.
func defaultViewColumns() []model.Column {
	return []model.Column{
		{Key: "nr", Label: "Nr", Type: string(cellvalue.Number), Section: "Basics", Pinned: true, Visible: true, OrderIndex: 0},
		{Key: "uni_name", Label: "Uni Name", Type: string(cellvalue.Text), Section: "Basics", Pinned: true, Visible: true, OrderIndex: 1},
		{Key: "cntr", Label: "Country", Type: string(cellvalue.Text), Section: "Basics", Pinned: true, Visible: true, OrderIndex: 2},
		{Key: "uni_type", Label: "Type", Type: string(cellvalue.Select), Section: "Basics", SelectOptions: model.SelectOptions{"Public", "Private"}, Visible: true, OrderIndex: 3},
		{Key: "web", Label: "Web", Type: string(cellvalue.Link), Section: "Basics", Visible: true, OrderIndex: 4},
	}
}

// basicCellValues derives the cells of the "Basics" columns from a
// university's own attributes. nr is the 1-based position in the listing.
func basicCellValues(u model.University, nr int) map[string]*string {
	n := strconv.Itoa(nr)
	name := u.Name
	return map[string]*string{
		"nr":       &n,
		"uni_name": &name,
		"cntr":     u.Country,
		"state":    u.State,
		"city":     u.City,
		"uni_type": u.Type,
		"web":      u.Website,
	}
}
