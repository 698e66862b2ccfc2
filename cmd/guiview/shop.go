package main

import (
	"fmt"
	"log/slog"

	"github.com/df-mc/invgui/format"
	"github.com/df-mc/invgui/gui"
	"github.com/df-mc/invgui/gui/item"
	"github.com/google/uuid"
	"github.com/sandertv/gophertunnel/minecraft/text"
)

type shopPage string

const (
	shopMain      shopPage = "main"
	shopCatalogue shopPage = "catalogue"
)

type offer struct {
	material string
	base     int64
	discount float64
}

var catalogue = []offer{
	{"diamond", 1200, 0}, {"emerald", 900, 0.1}, {"gold_ingot", 450, 0}, {"iron_ingot", 120, 0},
	{"copper_ingot", 40, 0.25}, {"netherite_ingot", 25000, 0}, {"lapis_lazuli", 60, 0}, {"redstone", 35, 0},
	{"coal", 15, 0}, {"quartz", 80, 0}, {"amethyst_shard", 140, 0.05}, {"prismarine_shard", 95, 0},
	{"blaze_rod", 700, 0}, {"ender_pearl", 850, 0}, {"slime_ball", 220, 0}, {"ghast_tear", 1900, 0},
	{"nether_star", 150000, 0}, {"elytra", 98000, 0.15}, {"trident", 42000, 0}, {"totem_of_undying", 64000, 0},
	{"golden_apple", 5200, 0}, {"enchanted_golden_apple", 87500, 0}, {"name_tag", 3000, 0.5}, {"saddle", 2600, 0},
	{"heart_of_the_sea", 33000, 0}, {"shulker_shell", 12000, 0}, {"dragon_breath", 7000, 0}, {"echo_shard", 4800, 0},
}

// price returns the price of the offer after its discount.
func (o offer) price() int64 {
	return o.base - int64(float64(o.base)*o.discount)
}

// shop is a demo GUI that lets the viewer spend a balance on items.
type shop struct {
	g       *gui.GUI[shopPage]
	log     *slog.Logger
	name    string
	balance int64
	bought  int
}

func newShop(reg *gui.Registry, h gui.Host, viewer uuid.UUID, conf gui.Config) (*shop, error) {
	if conf.Size < gui.SizeSmall {
		conf.Size = gui.SizeSmall
	}
	if conf.Title == "" {
		conf.Title = format.SmallFont("General store")
	}
	g, err := gui.New(reg, h, viewer, []shopPage{shopMain, shopCatalogue}, conf)
	if err != nil {
		return nil, err
	}
	s := &shop{g: g, log: h.Logger(), name: "General store", balance: 100000}
	if err := g.RegisterPage(shopMain, s.renderMain); err != nil {
		return nil, err
	}
	if err := g.RegisterPage(shopCatalogue, s.renderCatalogue); err != nil {
		return nil, err
	}
	if err := g.ChangePage(shopMain); err != nil {
		return nil, err
	}
	return s, g.Open()
}

func (s *shop) balanceIcon() item.Stack {
	return item.NewStack("gold_nugget", 1).
		WithCustomName("<gold>Balance</gold>").
		WithLore(
			text.Colourf("<grey>%v coins</grey>", format.Number(s.balance)),
			text.Colourf("<grey>%v items bought</grey>", format.Number(int64(s.bought))),
		)
}

func (s *shop) renderMain(g *gui.GUI[shopPage]) error {
	browse := gui.NewButton(0, item.NewStack("chest", 1).WithCustomName("<green>Browse %s</green>", s.name), func(*gui.ClickEvent) {
		if err := g.ChangePage(shopCatalogue); err != nil {
			s.log.Error("Failed to open catalogue.", "err", err)
		}
	})
	rename := gui.NewButton(0, item.NewStack("name_tag", 1).WithCustomName("<aqua>Rename shop</aqua>"), func(*gui.ClickEvent) {
		err := g.AwaitTextInput(func(e *gui.ChatEvent) {
			s.name = e.Message
			s.log.Info("Shop renamed.", "name", e.Message)
		})
		if err != nil {
			s.log.Error("Failed to await shop name.", "err", err)
		}
	})
	exit := gui.NewButton(0, item.NewStack("barrier", 1).WithCustomName("<red>Close</red>"), func(*gui.ClickEvent) {
		if err := g.Close(true); err != nil {
			s.log.Error("Failed to close shop.", "err", err)
		}
	})
	return joinErrors(
		g.AddButton(11, browse),
		g.AddItem(13, s.balanceIcon()),
		g.AddButton(15, rename),
		g.AddButton(22, exit),
	)
}

func (s *shop) renderCatalogue(g *gui.GUI[shopPage]) error {
	for _, o := range catalogue {
		lore := []string{text.Colourf("<grey>Price: </grey><gold>%v</gold>", format.Number(o.price()))}
		if o.discount > 0 {
			lore = append(lore, text.Colourf("<green>%v off</green>", format.Percentage(o.discount*100)))
		}
		icon := item.NewStack(o.material, 1).WithCustomName("<white>%v</white>", o.material).WithLore(lore...)
		g.AddPaginatedButton(gui.NewButton(0, icon, func(e *gui.ClickEvent) {
			s.buy(o, e.Click)
		}))
	}
	back := gui.NewButton(0, item.NewStack("oak_door", 1).WithCustomName("<yellow>Back</yellow>"), func(*gui.ClickEvent) {
		if err := g.ChangePageToPrevious(); err != nil {
			s.log.Error("Failed to go back.", "err", err)
		}
	})
	return joinErrors(
		g.EnablePagination(0, 17, 18, 26),
		g.AddButton(22, back),
		g.AddItem(20, s.balanceIcon()),
	)
}

// buy buys a single item of the offer, or a stack of 16 on a shift click.
func (s *shop) buy(o offer, click gui.ClickType) {
	n := int64(1)
	if click == gui.ClickShiftLeft || click == gui.ClickShiftRight {
		n = 16
	}
	cost := o.price() * n
	if cost > s.balance {
		s.log.Warn("Balance too low.", "item", o.material, "cost", format.Number(cost))
		return
	}
	s.balance -= cost
	s.bought += int(n)
	s.log.Info("Bought item.", "item", o.material, "count", n, "cost", format.Number(cost))
	if err := s.g.Render(); err != nil {
		s.log.Error("Failed to render shop.", "err", err)
	}
}

func joinErrors(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return fmt.Errorf("render shop: %w", err)
		}
	}
	return nil
}
