// Package embeds provides Discord embed builders for build recommendations.
package embeds

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/buildadvisor/internal/advisor"
	"github.com/buildadvisor/internal/data"
)

// Colors for embeds
const (
	ColorSuccess = 0x00FF00 // Green
	ColorError   = 0xFF0000 // Red
	ColorInfo    = 0x3498DB // Blue
	ColorWarning = 0xFFFF00 // Yellow
	ColorMatchup = 0x9B59B6 // Purple
)

// DDragonVersion is the Data Dragon version for assets. It is replaced with
// the catalog version at startup.
var DDragonVersion = "14.23.1"

// Discord caps an embed field value at 1024 characters.
const maxFieldLength = 1024

// championAssetNames covers champions whose Data Dragon key is not their
// display name with spaces and apostrophes removed.
var championAssetNames = map[string]string{
	"Wukong":         "MonkeyKing",
	"Nunu & Willump": "Nunu",
	"Renata Glasc":   "Renata",
	"Kai'Sa":         "Kaisa",
	"Kha'Zix":        "Khazix",
	"Cho'Gath":       "Chogath",
	"Vel'Koz":        "Velkoz",
	"Bel'Veth":       "Belveth",
	"LeBlanc":        "Leblanc",
}

// GetChampionIcon returns the champion icon URL. Match data already uses the
// asset key, so most names pass through.
func GetChampionIcon(championName string) string {
	key, ok := championAssetNames[championName]
	if !ok {
		key = strings.NewReplacer(" ", "", "'", "", ".", "").Replace(championName)
	}
	return fmt.Sprintf("https://ddragon.leagueoflegends.com/cdn/%s/img/champion/%s.png", DDragonVersion, key)
}

// titled builds a plain message embed, falling back to fallbackTitle.
func titled(message, title, fallbackTitle string, color int) *discordgo.MessageEmbed {
	if title == "" {
		title = fallbackTitle
	}
	return &discordgo.MessageEmbed{Title: title, Description: message, Color: color}
}

// Success creates a success embed.
func Success(message, title string) *discordgo.MessageEmbed {
	return titled(message, title, "✅ Success", ColorSuccess)
}

// Error creates an error embed.
func Error(message, title string) *discordgo.MessageEmbed {
	return titled(message, title, "❌ Error", ColorError)
}

// Warning creates a warning embed.
func Warning(message, title string) *discordgo.MessageEmbed {
	return titled(message, title, "⚠️ Warning", ColorWarning)
}

// Info creates an info embed.
func Info(message, title string) *discordgo.MessageEmbed {
	return titled(message, title, "ℹ️ Info", ColorInfo)
}

// Build creates the embed for a build query: the reference build and, when an
// opponent was asked for, the matchup build next to it.
func Build(general, specific advisor.Recommendation) *discordgo.MessageEmbed {
	title := fmt.Sprintf("⚔️ BUILD: %s", strings.ToUpper(general.Champion))
	color := ColorInfo
	if specific.Opponent != "" {
		title = fmt.Sprintf("⚔️ %s vs %s", strings.ToUpper(general.Champion), strings.ToUpper(specific.Opponent))
	}
	if specific.Found() {
		color = ColorMatchup
	}

	embed := &discordgo.MessageEmbed{
		Title: title,
		Color: color,
		Thumbnail: &discordgo.MessageEmbedThumbnail{
			URL: GetChampionIcon(general.Champion),
		},
		Fields: make([]*discordgo.MessageEmbedField, 0, 2),
	}

	if specific.Found() {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("🎯 VS %s", specific.Opponent),
			Value: itemList(specific),
		})
	} else if specific.Opponent != "" {
		embed.Description = fmt.Sprintf("_No games recorded against **%s**, showing the general build._", specific.Opponent)
	}

	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:  "🗡️ GENERAL BUILD",
		Value: itemList(general),
	})

	embed.Footer = &discordgo.MessageEmbedFooter{
		Text: fmt.Sprintf("📊 Learned from ranked games • Patch %s", DDragonVersion),
	}
	return embed
}

// Item creates the embed describing one item.
func Item(item data.Item, iconURL string) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       item.Name,
		Description: truncate(item.Plaintext, maxFieldLength),
		Color:       ColorInfo,
		Thumbnail: &discordgo.MessageEmbedThumbnail{
			URL: iconURL,
		},
		Fields: []*discordgo.MessageEmbedField{
			{Name: "💰 Cost", Value: fmt.Sprintf("%d gold", item.Gold.Total), Inline: true},
		},
	}

	if stats := item.StatLines(); len(stats) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "📈 Stats",
			Value:  truncate(strings.Join(stats, "\n"), maxFieldLength),
			Inline: true,
		})
	}
	if text := item.DescriptionText(); text != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "📜 Effects",
			Value: truncate(text, maxFieldLength),
		})
	}

	embed.Footer = &discordgo.MessageEmbedFooter{
		Text: fmt.Sprintf("Item %s", item.ID),
	}
	return embed
}

// Matchups creates the embed listing a champion's known opponents.
func Matchups(champion string, opponents []string) *discordgo.MessageEmbed {
	if len(opponents) == 0 {
		return Info(fmt.Sprintf("No matchup data for **%s** yet.", champion), "📋 Matchups")
	}

	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("📋 %s matchups (%d)", champion, len(opponents)),
		Description: truncate(strings.Join(opponents, ", "), 4096),
		Color:       ColorInfo,
		Thumbnail: &discordgo.MessageEmbedThumbnail{
			URL: GetChampionIcon(champion),
		},
	}
}

func itemList(rec advisor.Recommendation) string {
	if len(rec.Items) == 0 {
		return "No data"
	}
	lines := make([]string, len(rec.Items))
	for i, it := range rec.Items {
		lines[i] = fmt.Sprintf("`%d.` **%s**", i+1, it.Name)
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
