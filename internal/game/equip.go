package game

import (
	"fmt"
	"strings"
)

// johnnyDiscard applies Johnny Kisch's skill: equipping a card forces every
// other living player to discard their copy. Returns the owners affected.
func (g *Game) johnnyDiscard(player *Player, name CardName) []string {
	if !player.hasSkill(SkillJohnny) {
		return nil
	}

	affected := []string{}
	for _, other := range g.getAlivePlayersAfter(player) {
		if card, ok := popWithName(&other.Equipment, name); ok {
			g.Deck.Discard(card)
			affected = append(affected, other.Name+"'s")
		}
	}
	return affected
}

func johnnyText(affected []string, name CardName) string {
	if len(affected) == 0 {
		return ""
	}
	verb := " was"
	suffix := ""
	if len(affected) > 1 {
		verb = " were"
		suffix = "s"
	}
	return fmt.Sprintf(" %s %s%s%s discarded (%s skill).",
		strings.Join(affected, " and "), Title(name), suffix, verb, Title(SkillJohnny))
}

func (g *Game) equipGun(player *Player, cardIndices []int) error {
	if err := check(len(cardIndices) == 1, CodeInvalidCard, "can only equip one gun at a time"); err != nil {
		return err
	}
	if err := check(hasUniqueIndices(len(player.Hand), cardIndices), CodeInvalidCard, "you do not have the card you are trying to equip"); err != nil {
		return err
	}

	newGun := popAt(&player.Hand, cardIndices[0])
	g.tryEmptyHandSkill(player)

	oldGun, hadGun := popWithNameIn(&player.Equipment, guns)
	if hadGun {
		g.Deck.Discard(oldGun)
	}

	affected := g.johnnyDiscard(player, newGun.Name)
	player.Equipment = append(player.Equipment, newGun)

	replaced := ""
	if hadGun {
		replaced = fmt.Sprintf(", replacing the %s", Title(oldGun.Name))
	}

	event := EventPrepGun
	if newGun.Name == CardVolcanic {
		event = EventPrepVolcanic
	}
	g.stateUpdated(event, fmt.Sprintf("%s equipped the %s%s.%s",
		player.Name, cardText(newGun), replaced, johnnyText(affected, newGun.Name)))
	return nil
}

func (g *Game) equipUnique(player *Player, cardIndices []int) error {
	if err := check(len(cardIndices) == 1, CodeInvalidCard, "can only equip one card at a time"); err != nil {
		return err
	}
	if err := check(hasUniqueIndices(len(player.Hand), cardIndices), CodeInvalidCard, "you do not have the card you are trying to equip"); err != nil {
		return err
	}
	duplicate := player.hasEquipped(player.Hand[cardIndices[0]].Name)
	if err := check(!duplicate, CodeInvalidCard, "you cannot have two of this same card equipped; keep in hand or discard"); err != nil {
		return err
	}

	card := popAt(&player.Hand, cardIndices[0])
	affected := g.johnnyDiscard(player, card.Name)
	player.Equipment = append(player.Equipment, card)

	event := EventEquipped
	if card.Type == TypeItem {
		event = cardEvent(card.Name)
	}
	g.stateUpdated(event, fmt.Sprintf("%s equipped a %s.%s", player.Name, cardText(card), johnnyText(affected, card.Name)))

	g.tryEmptyHandSkill(player)
	return nil
}

func (g *Game) playJail(player *Player, cardIndices []int, targets []TargetSelection) error {
	if err := check(len(cardIndices) == 1, CodeInvalidCard, "can only play one %s at a time", Title(CardJail)); err != nil {
		return err
	}
	if err := check(hasUniqueIndices(len(player.Hand), cardIndices), CodeInvalidCard, "your hand does not have the card you are trying to play"); err != nil {
		return err
	}

	target, err := g.playerOnlyTarget(CardJail, targets)
	if err != nil {
		return err
	}
	if err := check(!target.hasEquipped(CardJail), CodeInvalidTarget, "player is already in %s", Title(CardJail)); err != nil {
		return err
	}

	allowed := len(g.Players) == 2 || g.Rules.JailDuringOneOnOne || !g.isOneOnOne()
	if err := check(allowed, CodeRuleViolation, "cannot put players in %s during one on one", Title(CardJail)); err != nil {
		return err
	}

	if target.hasRole(RoleSheriff) {
		if err := check(g.Rules.CanJailSheriff != 0, CodeRuleViolation, "cannot jail the %s", Title(RoleSheriff)); err != nil {
			return err
		}
		if err := check(g.Rules.CanJailSheriff != 1 || g.isOneOnOne(), CodeRuleViolation, "cannot jail the %s until one on one", Title(RoleSheriff)); err != nil {
			return err
		}
	}

	if err := g.checkApache(target, player.Hand[cardIndices[0]].Suit); err != nil {
		return err
	}

	jail := popAt(&player.Hand, cardIndices[0])
	g.tryEmptyHandSkill(player)
	target.Equipment = append(target.Equipment, jail)

	g.stateUpdated(EventInJail, fmt.Sprintf("%s put %s in %s.", player.Name, target.Name, cardText(jail)))
	return nil
}

func (g *Game) addSkill(player *Player, cardIndices []int) error {
	if err := check(g.Rules.SkillsInDeck, CodeRuleViolation, "cannot replace skills"); err != nil {
		return err
	}
	if err := check(len(cardIndices) == 1, CodeInvalidCard, "can only place one skill at a time"); err != nil {
		return err
	}
	if err := check(len(g.Turn.SkillsPlaced) < g.Rules.MaxSkillsPerTurn, CodeNotAllowed, "you already placed %d skills this turn", g.Rules.MaxSkillsPerTurn); err != nil {
		return err
	}
	if err := check(len(player.Skills) < g.Rules.MaxSkills, CodeNotAllowed, "you cannot have more than %d skills; select one to be replaced", g.Rules.MaxSkills); err != nil {
		return err
	}
	if err := check(hasUniqueIndices(len(player.Hand), cardIndices), CodeInvalidCard, "your hand does not have the skill you are trying to apply"); err != nil {
		return err
	}

	skill := popAt(&player.Hand, cardIndices[0])
	g.tryEmptyHandSkill(player)

	player.Skills = append(player.Skills, skill)
	g.Turn.SkillsPlaced = append(g.Turn.SkillsPlaced, skill.Name)
	g.Turn.MustMimic = skill.Name == SkillVera

	extras := ""
	if g.Rules.DrawWithSkill {
		g.givePlayerCards(player, 1)
		extras = " They drew 1 card."
	}
	if g.Turn.MustMimic {
		extras += fmt.Sprintf(" They must now choose a skill in play to mimic (%s skill).", Title(SkillVera))
	}

	g.stateUpdated(EventSkill, fmt.Sprintf("%s equipped the %s skill.%s", player.Name, cardText(skill), extras))
	return nil
}

func (g *Game) replaceSkill(player *Player, cardIndices []int, targets []TargetSelection) error {
	if err := check(g.Rules.SkillsInDeck, CodeRuleViolation, "cannot replace skills"); err != nil {
		return err
	}
	if err := check(len(g.Turn.SkillsPlaced) < g.Rules.MaxSkillsPerTurn, CodeNotAllowed, "you already placed %d skills this turn", g.Rules.MaxSkillsPerTurn); err != nil {
		return err
	}
	if err := check(len(cardIndices) == 1, CodeInvalidCard, "can only place one skill at a time"); err != nil {
		return err
	}
	if err := check(hasUniqueIndices(len(player.Hand), cardIndices), CodeInvalidCard, "your hand does not have the skill you are trying to apply"); err != nil {
		return err
	}
	if err := check(len(targets) == 1, CodeInvalidTarget, "must only target one of your own skills to replace"); err != nil {
		return err
	}
	if err := check(normalizeName(targets[0].Name) == player.Name, CodeInvalidTarget, "you can only replace your skills"); err != nil {
		return err
	}

	oldIndex := targets[0].skillIndex()
	if err := check(oldIndex >= 0 && oldIndex < len(player.Skills), CodeInvalidTarget, "the skill you are trying to replace does not exist"); err != nil {
		return err
	}

	oldName := player.Skills[oldIndex].Name
	placedThisTurn := false
	for _, name := range g.Turn.SkillsPlaced {
		if name == oldName {
			placedThisTurn = true
		}
	}
	if err := check(g.Rules.TurnoverSkillsInTurn || !placedThisTurn, CodeNotAllowed, "you cannot replace a skill you placed this turn"); err != nil {
		return err
	}

	oldSkill := popAt(&player.Skills, oldIndex)
	g.Deck.Discard(oldSkill)
	if oldSkill.Name == SkillVera {
		player.MimickedSkill = ""
	}

	newSkill := popAt(&player.Hand, cardIndices[0])
	player.Skills = append(player.Skills, newSkill)
	g.Turn.MustMimic = newSkill.Name == SkillVera
	g.Turn.SkillsPlaced = append(g.Turn.SkillsPlaced, newSkill.Name)
	g.tryEmptyHandSkill(player)

	extras := ""
	if g.Rules.DrawWithSkill {
		g.givePlayerCards(player, 1)
		extras = " They drew 1 card."
	}
	if g.Turn.MustMimic {
		extras += fmt.Sprintf(" They must now choose a skill in play to mimic (%s skill).", Title(SkillVera))
	}

	g.stateUpdated(EventSkill, fmt.Sprintf("%s equipped the %s skill, replacing their %s skill.%s",
		player.Name, cardText(newSkill), Title(oldSkill.Name), extras))
	return nil
}

func (g *Game) assumeRole(player *Player, cardIndices []int) error {
	if err := check(!g.Rules.Roles, CodeRuleViolation, "cannot assume roles; they are assigned at start"); err != nil {
		return err
	}
	if err := check(len(cardIndices) == 1, CodeInvalidCard, "can only place one role at a time"); err != nil {
		return err
	}
	if err := check(hasUniqueIndices(len(player.Hand), cardIndices), CodeInvalidCard, "your hand does not have the role you are trying to apply"); err != nil {
		return err
	}

	role := popAt(&player.Hand, cardIndices[0])
	g.tryEmptyHandSkill(player)
	player.Role = &role

	g.stateUpdated(cardEvent(role.Name), fmt.Sprintf("%s became the %s.", player.Name, Title(role.Name)))
	return nil
}

// MimicSkill locks in the skill Vera Custer copies for this round. It must be
// held by another living player, and recomputes the draw allotment since the
// mimicked skill may change it.
func (g *Game) MimicSkill(playerName string, req MimicRequest) error {
	if err := check(!g.Ended, CodeEnded, "game already ended"); err != nil {
		return err
	}
	if err := check(g.Started, CodeNotStarted, "game not started"); err != nil {
		return err
	}
	player, err := g.getPlayer(playerName)
	if err != nil {
		return err
	}
	if err := check(g.turnPlayer().Name == player.Name, CodeNotYourTurn, "not your turn"); err != nil {
		return err
	}
	if err := check(len(player.TempHand) == 0, CodePendingAction, "you have pending draw actions"); err != nil {
		return err
	}
	if err := check(len(g.Turn.Reacting) == 0, CodePendingAction, "you cannot play cards at this time"); err != nil {
		return err
	}
	if err := check(!g.Turn.Discarding, CodeNotAllowed, "you cannot play after discarding"); err != nil {
		return err
	}
	if err := check(g.Turn.Store.CurrentPicker == "", CodePendingAction, "%s must complete first", Title(CardGeneralStore)); err != nil {
		return err
	}
	if err := check(g.Rules.ExpansionDodgeCity, CodeRuleViolation, "this feature is not available with these rules"); err != nil {
		return err
	}
	if err := check(g.Turn.MustMimic, CodeNotAllowed, "you cannot choose a skill to mimic at this time"); err != nil {
		return err
	}
	if err := check(player.hasSkill(SkillVera), CodeNotAllowed, "only %s can mimic other skills", Title(SkillVera)); err != nil {
		return err
	}

	var source *Player
	for _, other := range g.getAlivePlayersAfter(player) {
		if other.hasSkill(req.Skill) {
			source = other
			break
		}
	}
	if err := check(source != nil, CodeInvalidTarget, "the selected skill is not in play for any other player"); err != nil {
		return err
	}

	player.MimickedSkill = req.Skill
	g.Turn.MustMimic = false

	if g.Turn.DrawsRemaining > 0 {
		g.Turn.DrawsRemaining = g.startOfTurnDraws(player)
	}

	g.stateUpdated(EventSkill, fmt.Sprintf("%s is mimicking the %s skill until the start of their next turn.",
		player.Name, Title(req.Skill)))
	return nil
}
