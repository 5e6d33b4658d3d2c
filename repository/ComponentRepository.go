package repository

import (
	"sort"
	"strings"

	"ifcdash/ifc"
	"ifcdash/models"
)

// Unnamed labels products without a usable name in detailed counts.
const Unnamed = "Unnamed"

// CountBuildingComponents counts every IfcProduct by its concrete type.
func CountBuildingComponents(model *ifc.Model) map[string]int {
	counts := map[string]int{}
	for _, e := range model.EntitiesOfType("IfcProduct") {
		counts[e.Type()]++
	}
	return counts
}

// CountByNamePrefix counts products of productType by the part of their
// Name before the first ':' (the family name most authoring tools write).
func CountByNamePrefix(model *ifc.Model, productType string) map[string]int {
	counts := map[string]int{}
	for _, e := range model.EntitiesOfType(productType) {
		name := e.AttrString("Name")
		if name == "" {
			counts[Unnamed]++
			continue
		}
		prefix := strings.SplitN(name, ":", 2)[0]
		if prefix == "" {
			prefix = Unnamed
		}
		counts[prefix]++
	}
	return counts
}

// SortCounts orders a count map. by is "Count" (descending, ties by name) or
// "Type"/"Category" (descending name); anything else sorts by name ascending.
func SortCounts(counts map[string]int, by string) []models.CategoryCount {
	out := make([]models.CategoryCount, 0, len(counts))
	for k, v := range counts {
		out = append(out, models.CategoryCount{Category: k, Count: v})
	}
	switch strings.ToLower(by) {
	case "count":
		sort.Slice(out, func(i, j int) bool {
			if out[i].Count != out[j].Count {
				return out[i].Count > out[j].Count
			}
			return out[i].Category < out[j].Category
		})
	case "type", "category":
		sort.Slice(out, func(i, j int) bool { return out[i].Category > out[j].Category })
	default:
		sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	}
	return out
}

// ProjectMetadata returns the metadata of the first IfcProject, with blanks
// replaced by models.NotAvailable.
func ProjectMetadata(model *ifc.Model) models.ProjectMetadata {
	meta, _ := ifc.ProjectInfo(model)
	return meta.Display()
}
