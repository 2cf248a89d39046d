package bot

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/buildadvisor/internal/advisor"
	"github.com/buildadvisor/internal/embeds"
)

// buildEmbed answers /build. The champion option also accepts "A vs B".
func (b *Bot) buildEmbed(championInput, opponentInput string) *discordgo.MessageEmbed {
	champion, opponent := championInput, opponentInput
	if opponent == "" {
		champion, opponent = advisor.ParseMatchup(championInput)
	}
	champion = b.advisor.ResolveChampion(champion)
	opponent = b.advisor.ResolveChampion(opponent)

	if champion == "" {
		return embeds.Error("Please give a champion name.", "")
	}

	general, specific := b.advisor.Compare(champion, opponent)
	if !general.Found() {
		return embeds.Warning(
			fmt.Sprintf("No games recorded for **%s** yet.", champion),
			"🔍 Unknown champion",
		)
	}
	return embeds.Build(general, specific)
}

// matchupsEmbed answers /matchups.
func (b *Bot) matchupsEmbed(championInput string) *discordgo.MessageEmbed {
	champion := b.advisor.ResolveChampion(championInput)
	return embeds.Matchups(champion, b.advisor.Opponents(champion))
}

// itemEmbed answers /item with an item name or numeric ID.
func (b *Bot) itemEmbed(query string) *discordgo.MessageEmbed {
	query = strings.TrimSpace(query)
	item, ok := b.catalog.Item(query)
	if !ok {
		item, ok = b.catalog.FindByName(query)
	}
	if !ok {
		return embeds.Error(fmt.Sprintf("No item named **%s**.", query), "")
	}
	return embeds.Item(item, b.catalog.GetItemIconURL(item.ID))
}
