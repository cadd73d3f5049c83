package scraper

// listingPage renders a category page with the given listing cards.
func listingPage(cards ...string) []byte {
	html := `<html><body><div id="list_container">`
	for _, c := range cards {
		html += c
	}
	html += `</div></body></html>`
	return []byte(html)
}

const matchingCard = `
<div class="container-fluid individual_internship" internshipid="1001">
  <h3 class="heading_4_5 profile"><a href="/internship/detail/react-intern-at-acme1001">React Developer</a></h3>
  <p class="company-name"> Acme Labs </p>
  <div class="row-1-item locations"><span><a href="/internships/mumbai">Mumbai</a></span></div>
  <span class="stipend">₹ 8,000 /month</span>
  <div class="row-1-item"><span>3 Months</span></div>
  <div class="item_body duration">3 Months</div>
  <div class="status-container"><span class="status-inactive">Be an early applicant, posted today</span></div>
  <span class="status-success">2 days ago</span>
</div>`

const lowStipendCard = `
<div class="container-fluid individual_internship" internshipid="1002">
  <h3 class="heading_4_5 profile"><a href="/internship/detail/content-at-beta1002">Content Writing</a></h3>
  <p class="company-name">Beta Media</p>
  <div class="locations">Mumbai</div>
  <span class="stipend">₹ 2,000 /month</span>
  <span class="status-success">Just now</span>
</div>`

const staleCard = `
<div class="container-fluid individual_internship" internshipid="1003">
  <h3 class="heading_4_5">Old Posting</h3>
  <p class="company-name">Gamma</p>
  <div class="locations">Mumbai</div>
  <span class="stipend">₹ 20,000 /month</span>
  <span class="status-info">3 weeks ago</span>
</div>`

const noTitleCard = `
<div class="container-fluid individual_internship" internshipid="1004">
  <p class="company-name">Delta</p>
</div>`
