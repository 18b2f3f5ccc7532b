package content

import (
	"bytes"
	"html/template"
	"regexp"
)

// Ad describes the product promoted inside articles.
type Ad struct {
	Name     string `json:"name"`
	Price    string `json:"price"`
	URL      string `json:"url" binding:"omitempty,url"`
	ImageURL string `json:"imageUrl" binding:"omitempty,url"`
}

// DefaultAd is the promotion preset offered by the admin panel.
var DefaultAd = Ad{
	Name:     `Кольцо "Антистресс"`,
	Price:    "2 500 ₽",
	URL:      "https://market.yandex.ru/search?shopPromoId=92839930_5WATME92&promo-type-name=promo-code&businessId=92839930&promoKey=FpOoVwvrfPAHLnedWYjY5g",
	ImageURL: "https://avatars.mds.yandex.net/get-mpic/5235286/img_id5676798159368923295.jpeg/orig",
}

// WithDefaults fills empty fields from DefaultAd.
func (a Ad) WithDefaults() Ad {
	if a.Name == "" {
		a.Name = DefaultAd.Name
	}
	if a.Price == "" {
		a.Price = DefaultAd.Price
	}
	if a.URL == "" {
		a.URL = DefaultAd.URL
	}
	if a.ImageURL == "" {
		a.ImageURL = DefaultAd.ImageURL
	}
	return a
}

var importAdTmpl = template.Must(template.New("import-ad").Parse(`
<div class="my-8 p-6 bg-white rounded-3xl shadow-clay border-2 border-clay-pink/20 flex flex-col sm:flex-row items-center gap-6 not-prose relative overflow-hidden">
  <div class="absolute top-0 right-0 bg-clay-pink text-white text-[10px] font-bold px-3 py-1 rounded-bl-xl">РЕКОМЕНДУЮ</div>
  <img src="{{.ImageURL}}" alt="Реклама" class="w-32 h-32 rounded-2xl object-cover shadow-sm border-2 border-white flex-shrink-0" />
  <div class="text-center sm:text-left flex-1">
    <h4 class="font-serif font-bold text-xl text-clay-text mb-1">Порадуй себя</h4>
    <p class="text-sm text-gray-500 mb-4 font-bold">Скидки на Яндекс Маркете по промокоду.</p>
    <div class="flex flex-col sm:flex-row items-center gap-4">
       <a href="{{.URL}}" target="_blank" class="inline-block px-6 py-2 bg-clay-pink text-white rounded-xl font-bold shadow-md hover:scale-105 transition-transform no-underline">
          Перейти к покупкам →
       </a>
    </div>
  </div>
</div>`))

var productAdTmpl = template.Must(template.New("product-ad").Parse(`
<div class="my-8 p-6 bg-white rounded-3xl shadow-clay border-2 border-clay-pink/20 flex flex-col sm:flex-row items-center gap-6 not-prose relative overflow-hidden">
  <div class="absolute top-0 right-0 bg-clay-pink text-white text-[10px] font-bold px-3 py-1 rounded-bl-xl">РЕКОМЕНДУЮ</div>
  <img src="{{.ImageURL}}" alt="{{.Name}}" class="w-32 h-32 rounded-2xl object-cover shadow-sm border-2 border-white flex-shrink-0" />
  <div class="text-center sm:text-left flex-1">
    <h4 class="font-serif font-bold text-xl text-clay-text mb-1">{{.Name}}</h4>
    <p class="text-sm text-gray-500 mb-4 font-bold">Идеально, чтобы порадовать себя.</p>
    <div class="flex flex-col sm:flex-row items-center gap-4">
       <span class="text-2xl font-bold text-clay-purple">{{.Price}}</span>
       <a href="{{.URL}}" target="_blank" class="inline-block px-6 py-2 bg-clay-pink text-white rounded-xl font-bold shadow-md hover:scale-105 transition-transform no-underline">
          Хочу купить →
       </a>
    </div>
  </div>
</div>`))

// ImportAdHTML renders the generic block injected into imported articles.
func ImportAdHTML(ad Ad) (string, error) {
	return render(importAdTmpl, ad.WithDefaults())
}

// ProductAdHTML renders the named product block appended by the editor.
func ProductAdHTML(ad Ad) (string, error) {
	return render(productAdTmpl, ad.WithDefaults())
}

func render(t *template.Template, ad Ad) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, ad); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var closingParaRe = regexp.MustCompile(`(?i)</p>`)

// InjectAfterParagraph inserts snippet right after the n-th closing </p>.
// Content with fewer paragraphs gets the snippet appended.
func InjectAfterParagraph(html, snippet string, n int) string {
	matches := closingParaRe.FindAllStringIndex(html, n)
	if n <= 0 || len(matches) < n {
		return html + snippet
	}
	pos := matches[n-1][1]
	return html[:pos] + snippet + html[pos:]
}
