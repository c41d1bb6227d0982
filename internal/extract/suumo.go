package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/yokomichi/chintaiscan/internal/model"
)

const suumoBaseURL = "https://suumo.jp"

// Suumo extracts SUUMO listing pages. Cards are cassetteitem blocks;
// each tbody of the cassetteitem_other table is one unit. SUUMO also
// carries a building category label HOMES has no equivalent of, so it
// is not part of the shared field set and is dropped here.
type Suumo struct{}

// Source implements Extractor.
func (Suumo) Source() model.Source { return model.SourceSuumo }

// Extract implements Extractor.
func (Suumo) Extract(pageHTML string) ([]model.RawRecord, []model.Issue, error) {
	doc, err := parseDoc(pageHTML)
	if err != nil {
		return nil, nil, err
	}

	var records []model.RawRecord
	var issues []model.Issue

	doc.Find("div.cassetteitem").Each(func(_ int, card *goquery.Selection) {
		var base model.BuildingFields

		base.Name = text(card.Find("div.cassetteitem_content-title").First())
		if base.Name == "" {
			issues = append(issues, missing(model.SourceSuumo, "name"))
		}

		base.Address = text(card.Find("li.cassetteitem_detail-col1").First())
		if base.Address == "" {
			issues = append(issues, missing(model.SourceSuumo, "address"))
		}

		var stations []string
		card.Find("div.cassetteitem_detail-text").Each(func(_ int, s *goquery.Selection) {
			stations = append(stations, text(s))
		})
		base.Access = strings.Join(stations, ", ")

		cols := card.Find("li.cassetteitem_detail-col3 div")
		if cols.Length() > 0 {
			base.AgeText = text(cols.Eq(0))
		}
		if cols.Length() > 1 {
			base.StructureText = text(cols.Eq(1))
		}

		imageURL := card.Find(".cassetteitem_object-item img").First().AttrOr("rel", "")
		// The misspelled class is the site's own.
		floorPlanURL := card.Find(".casssetteitem_other-thumbnail img").First().AttrOr("rel", "")
		detailURL := card.Find("a[href*='/chintai/jnc_']").First().AttrOr("href", "")
		if detailURL != "" && !strings.HasPrefix(detailURL, "http") {
			detailURL = suumoBaseURL + detailURL
		}

		card.Find("table.cassetteitem_other tbody").Each(func(_ int, row *goquery.Selection) {
			unit := model.UnitFields{
				ImageURL:     imageURL,
				FloorPlanURL: floorPlanURL,
				DetailURL:    detailURL,
			}

			if tds := row.Find("td"); tds.Length() > 2 {
				unit.FloorText = text(tds.Eq(2))
			}

			unit.RentText = text(row.Find(".cassetteitem_price--rent").First())
			unit.AdminFeeText = text(row.Find(".cassetteitem_price--administration").First())
			unit.DepositText = text(row.Find(".cassetteitem_price--deposit").First())
			unit.KeyMoneyText = text(row.Find(".cassetteitem_price--gratuity").First())
			unit.LayoutText = text(row.Find(".cassetteitem_madori").First())
			unit.AreaText = text(row.Find(".cassetteitem_menseki").First())

			records = append(records, model.RawRecord{
				Source:         model.SourceSuumo,
				BuildingFields: base,
				UnitFields:     unit,
			})
		})
	})

	return records, issues, nil
}
