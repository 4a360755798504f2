package usecase

import (
	"fmt"
	"html/template"
	"strings"

	"sea-news-bot/internal/domain/model"
)

const digestTitle = "MENA/SEA News Today"

var digestTemplate = template.Must(template.New("digest").Parse(`<html>
    <body style="font-family: Arial, sans-serif;">
        <h1>{{.Title}}</h1>
        <p>Date: {{.Date}}</p>
        {{range .Items}}
        <div style="margin-bottom: 20px; padding: 15px; border: 1px solid #ddd;">
            <h2>{{.ArticleInfo.Title}}</h2>
            {{if .ArticleInfo.ChineseTitle}}<h3 style="color: #666;">{{.ArticleInfo.ChineseTitle}}</h3>{{end}}
            <p style="color: #888;">Source: {{.ArticleInfo.Source}} | Date: {{.ArticleInfo.Date}}</p>
            <div style="margin: 10px 0;">
                <p><strong>English Summary:</strong><br>{{.EnglishSummary}}</p>
                <p><strong>Chinese Summary:</strong><br>{{.ChineseSummary}}</p>
            </div>
        </div>
        {{end}}
    </body>
</html>`))

type digestData struct {
	Title string
	Date  string
	Items []model.NewsItem
}

// renderDigest produces the digest subject and HTML body for the given date.
func renderDigest(date string, items []model.NewsItem) (subject, html string, err error) {
	var builder strings.Builder
	err = digestTemplate.Execute(&builder, digestData{
		Title: digestTitle,
		Date:  date,
		Items: items,
	})
	if err != nil {
		return "", "", fmt.Errorf("render digest: %w", err)
	}
	return fmt.Sprintf("%s - %s", digestTitle, date), builder.String(), nil
}
