package extract

import (
	"testing"

	"github.com/yokomichi/chintaiscan/internal/model"
)

const homesPage = `<!DOCTYPE html>
<html><body>
<div class="mod-mergeBuilding--rent--photo">
  <div class="bukkenName">パークサイド芝浦</div>
  <table>
    <tr><th>所在地</th><td>東京都港区芝浦2丁目3-4</td></tr>
    <tr><th>交通</th><td class="traffic">山手線/田町駅 歩5分, 都営三田線/三田駅 歩8分</td></tr>
  </table>
  <div class="moduleBody">
    <table>
      <tr><th>築年数/階数</th><td>築5年 / 10階建</td></tr>
    </table>
  </div>
  <div class="bukkenPhoto"><div class="photo"><img data-original="https://img.example/homes1.jpg"></div></div>
  <div class="floarPlanPic"><img data-original="https://img.example/homes1_plan.jpg"></div>
  <a href="https://www.homes.co.jp/chintai/room/123/">詳細</a>
  <table>
    <tbody class="unitListBody prg-unitListBody">
      <tr>
        <td class="roomKaisuu">3階</td>
        <td class="price"><span class="priceLabel">12.5万円</span>/10,000円<br>1ヶ月/無</td>
        <td class="layout">1LDK<br>40.2m²</td>
      </tr>
    </tbody>
    <tbody class="unitListBody prg-unitListBody">
      <tr>
        <td class="roomKaisuu">5階</td>
        <td class="price"><span class="priceLabel">15.8万円</span>/12,000円<br>2ヶ月/1ヶ月</td>
        <td class="layout">2LDK<br>55.0m²</td>
      </tr>
    </tbody>
  </table>
</div>
</body></html>`

func TestHomes_Extract(t *testing.T) {
	records, issues, err := Homes{}.Extract(homesPage)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(issues) != 0 {
		t.Errorf("unexpected issues: %+v", issues)
	}
	// One card with two unit rows fans out into two records.
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	first := records[0]
	if first.Source != model.SourceHomes {
		t.Errorf("source = %s", first.Source)
	}
	if first.Name != "パークサイド芝浦" {
		t.Errorf("name = %q", first.Name)
	}
	if first.Address != "東京都港区芝浦2丁目3-4" {
		t.Errorf("address = %q", first.Address)
	}
	if first.Access != "山手線/田町駅 歩5分, 都営三田線/三田駅 歩8分" {
		t.Errorf("access = %q", first.Access)
	}
	if first.AgeText != "築5年" || first.StructureText != "10階建" {
		t.Errorf("age/structure = %q/%q", first.AgeText, first.StructureText)
	}
	if first.FloorText != "3階" {
		t.Errorf("floor = %q", first.FloorText)
	}
	if first.RentText != "12.5万円" {
		t.Errorf("rent = %q", first.RentText)
	}
	if first.AdminFeeText != "10000円" {
		t.Errorf("admin fee = %q", first.AdminFeeText)
	}
	if first.DepositText != "1ヶ月" || first.KeyMoneyText != "無" {
		t.Errorf("deposit/key = %q/%q", first.DepositText, first.KeyMoneyText)
	}
	if first.LayoutText != "1LDK" {
		t.Errorf("layout = %q", first.LayoutText)
	}
	if first.AreaText != "40.2m2" {
		t.Errorf("area = %q, want m² folded to m2", first.AreaText)
	}
	if first.ImageURL != "https://img.example/homes1.jpg" {
		t.Errorf("image = %q", first.ImageURL)
	}
	if first.FloorPlanURL != "https://img.example/homes1_plan.jpg" {
		t.Errorf("floor plan = %q", first.FloorPlanURL)
	}
	if first.DetailURL != "https://www.homes.co.jp/chintai/room/123/" {
		t.Errorf("detail = %q", first.DetailURL)
	}

	second := records[1]
	// Building fields are copied, unit fields differ.
	if second.Name != first.Name || second.Address != first.Address || second.AgeText != first.AgeText {
		t.Error("building fields must be shared across units of one card")
	}
	if second.FloorText != "5階" || second.RentText != "15.8万円" || second.AreaText != "55.0m2" {
		t.Errorf("unit fields = %q/%q/%q", second.FloorText, second.RentText, second.AreaText)
	}
}

func TestHomes_MissingFieldsAreData(t *testing.T) {
	page := `<html><body>
<div class="mod-mergeBuilding--rent--photo">
  <table>
    <tbody class="unitListBody prg-unitListBody">
      <tr><td class="roomKaisuu">2階</td></tr>
    </tbody>
  </table>
</div>
</body></html>`

	records, issues, err := Homes{}.Extract(page)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record despite missing fields, got %d", len(records))
	}
	rec := records[0]
	if rec.Name != "" || rec.Address != "" || rec.RentText != "" {
		t.Errorf("absent fields must stay empty, got %+v", rec)
	}
	if rec.FloorText != "2階" {
		t.Errorf("floor = %q", rec.FloorText)
	}
	if len(issues) == 0 {
		t.Error("expected missing-field issues for name and address")
	}
}

func TestHomes_NoCards(t *testing.T) {
	records, _, err := Homes{}.Extract("<html><body><p>no listings</p></body></html>")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected no records, got %d", len(records))
	}
}
