package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/yokomichi/chintaiscan/internal/model"
)

// Homes extracts HOMES listing pages. Cards are merged-building blocks
// (mod-mergeBuilding--rent--photo) and each unitListBody row inside a
// card is one rentable unit.
type Homes struct{}

// Source implements Extractor.
func (Homes) Source() model.Source { return model.SourceHomes }

// Extract implements Extractor.
func (Homes) Extract(pageHTML string) ([]model.RawRecord, []model.Issue, error) {
	doc, err := parseDoc(pageHTML)
	if err != nil {
		return nil, nil, err
	}

	var records []model.RawRecord
	var issues []model.Issue

	doc.Find("div.mod-mergeBuilding--rent--photo").Each(func(_ int, card *goquery.Selection) {
		var base model.BuildingFields

		base.Name = text(card.Find(".bukkenName").First())
		if base.Name == "" {
			issues = append(issues, missing(model.SourceHomes, "name"))
		}

		// 所在地 sits in a th/td table, not under a dedicated class.
		card.Find("th").EachWithBreak(func(_ int, th *goquery.Selection) bool {
			if text(th) != "所在地" {
				return true
			}
			base.Address = text(th.Next())
			return false
		})
		if base.Address == "" {
			issues = append(issues, missing(model.SourceHomes, "address"))
		}

		if traffic := card.Find("td.traffic").First(); traffic.Length() > 0 {
			base.Access = text(traffic)
		} else {
			var stations []string
			card.Find("span.prg-stationText").Each(func(_ int, s *goquery.Selection) {
				stations = append(stations, text(s))
			})
			base.Access = strings.Join(stations, ", ")
		}

		// "築5年 / 10階建" style combined cell keyed by its th label.
		card.Find("div.moduleBody th").EachWithBreak(func(_ int, th *goquery.Selection) bool {
			if text(th) != "築年数/階数" {
				return true
			}
			parts := strings.Split(text(th.Next()), " ")
			if len(parts) > 0 {
				base.AgeText = parts[0]
			}
			if len(parts) > 2 {
				base.StructureText = parts[2]
			}
			return false
		})

		imageURL := card.Find(".bukkenPhoto .photo img").First().AttrOr("data-original", "")
		floorPlanURL := card.Find(".floarPlanPic img").First().AttrOr("data-original", "")
		detailURL := card.Find("a[href*='/chintai/room']").First().AttrOr("href", "")

		card.Find(".unitListBody.prg-unitListBody").Each(func(_ int, room *goquery.Selection) {
			unit := model.UnitFields{
				ImageURL:     imageURL,
				FloorPlanURL: floorPlanURL,
				DetailURL:    detailURL,
			}

			unit.FloorText = text(room.Find(".roomKaisuu").First())

			if label := room.Find("span.priceLabel").First(); label.Length() > 0 {
				unit.RentText = text(label)
				// Admin fee is the bare text node after the rent label,
				// formatted like "/ 10,000円".
				admin := siblingText(label)
				admin = strings.ReplaceAll(admin, "/", "")
				unit.AdminFeeText = strings.ReplaceAll(admin, ",", "")
			}

			if price := room.Find("td.price").First(); price.Length() > 0 {
				// Second line of the price cell is "敷金/礼金".
				parts := strings.SplitN(textAfterBr(price), "/", 2)
				unit.DepositText = strings.TrimSpace(parts[0])
				if len(parts) > 1 {
					unit.KeyMoneyText = strings.TrimSpace(parts[1])
				}
			}

			if layout := room.Find("td.layout").First(); layout.Length() > 0 {
				unit.LayoutText = firstOwnText(layout)
				unit.AreaText = strings.ReplaceAll(textAfterBr(layout), "m²", "m2")
			}

			records = append(records, model.RawRecord{
				Source:         model.SourceHomes,
				BuildingFields: base,
				UnitFields:     unit,
			})
		})
	})

	return records, issues, nil
}
