package data

import "github.com/yola1107/duel/internal/model"

// builtinCards 内置卡池。redis 没有配置卡牌时兜底，保证房间可开局。
func builtinCards() []*model.Card {
	return []*model.Card{
		{
			ID: 1001, Code: "recruit", Name: "新兵", Type: model.CardMinion, Cost: 1,
			Minion: &model.MinionInfo{Attack: 2, Health: 1},
		},
		{
			ID: 1002, Code: "guard", Name: "卫兵", Type: model.CardMinion, Cost: 2,
			Minion: &model.MinionInfo{Attack: 2, Health: 3},
		},
		{
			ID: 1003, Code: "pyro_adept", Name: "火术学徒", Type: model.CardMinion, Cost: 3,
			NeedSelectTarget: true,
			Minion: &model.MinionInfo{
				Attack: 3, Health: 2,
				Effects: []model.MinionEffect{
					{Type: model.MinionBattlecry, Effects: []model.CardEffect{
						{Op: model.OpDealDamage, Target: model.SelectTargetEntity, Damage: 2},
					}},
				},
			},
		},
		{
			ID: 1004, Code: "broodmother", Name: "蛛母", Type: model.CardMinion, Cost: 4,
			Minion: &model.MinionInfo{
				Attack: 3, Health: 4,
				Effects: []model.MinionEffect{
					{Type: model.MinionDeathrattle, Effects: []model.CardEffect{
						{Op: model.OpSummonMinion, MinionCode: "spiderling", Count: 2},
					}},
				},
			},
		},
		{
			ID: 1005, Code: "spiderling", Name: "幼蛛", Type: model.CardMinion, Cost: 1,
			Derive: true,
			Minion: &model.MinionInfo{Attack: 1, Health: 1},
		},
		{
			ID: 1006, Code: "vanguard", Name: "先锋官", Type: model.CardMinion, Cost: 3,
			Minion: &model.MinionInfo{
				Attack: 2, Health: 4,
				Effects: []model.MinionEffect{
					{
						Type:              model.MinionSwapFrontBackHook,
						ApplyWhenTeamSwap: true,
						Effects: []model.CardEffect{
							{Op: model.OpBuff, Target: model.SelfMinion, AtkBoost: 1, HpBoost: 1},
						},
					},
				},
			},
		},
		{
			ID: 1007, Code: "saboteur", Name: "扰阵者", Type: model.CardMinion, Cost: 4,
			Minion: &model.MinionInfo{
				Attack: 3, Health: 3,
				Effects: []model.MinionEffect{
					{
						Type:                  model.MinionSwapFrontBackHook,
						ApplyWhenOppositeSwap: true,
						Effects: []model.CardEffect{
							{Op: model.OpDealDamage, Target: model.OppositeAllMinion, Damage: 1},
						},
					},
				},
			},
		},
		{
			ID: 1008, Code: "firebolt", Name: "火焰箭", Type: model.CardSpell, Cost: 2,
			NeedSelectTarget: true,
			Spell: &model.SpellInfo{
				Effects: []model.SpellEffect{
					{Type: model.SpellNormal, Effects: []model.CardEffect{
						{Op: model.OpDealDamage, Target: model.SelectTargetEntity, Damage: 3},
					}},
				},
			},
		},
		{
			ID: 1009, Code: "battle_orders", Name: "作战指令", Type: model.CardSpell, Cost: 3,
			Spell: &model.SpellInfo{
				Effects: []model.SpellEffect{
					{Type: model.SpellNormal, Effects: []model.CardEffect{
						{Op: model.OpBuff, Target: model.TeamAllMinion, AtkBoost: 1, HpBoost: 1},
					}},
					{Type: model.SpellFrontUse, Effects: []model.CardEffect{
						{Op: model.OpDrawCard, Target: model.SelfHero, Count: 1},
					}},
				},
			},
		},
		{
			ID: 1010, Code: "ambush", Name: "伏击", Type: model.CardSpell, Cost: 2,
			Spell: &model.SpellInfo{
				Effects: []model.SpellEffect{
					{Type: model.SpellNormal, Effects: []model.CardEffect{
						{Op: model.OpDealDamage, Target: model.OppositeFrontHero, Damage: 2},
					}},
					{Type: model.SpellBackUse, Effects: []model.CardEffect{
						{Op: model.OpDealDamage, Target: model.OppositeFrontHero, Damage: 2},
						{Op: model.OpPreventNormalEffect},
					}},
				},
			},
		},
		{
			ID: 1011, Code: "mend", Name: "治疗术", Type: model.CardSpell, Cost: 1,
			NeedSelectTarget: true,
			Spell: &model.SpellInfo{
				Effects: []model.SpellEffect{
					{Type: model.SpellNormal, Effects: []model.CardEffect{
						{Op: model.OpRecoverHealth, Target: model.SelectTargetEntity, Hp: 4},
					}},
				},
			},
		},
		{
			ID: 1012, Code: "rotation", Name: "换防", Type: model.CardSpell, Cost: 2,
			Spell: &model.SpellInfo{
				Effects: []model.SpellEffect{
					{Type: model.SpellNormal, Effects: []model.CardEffect{
						{Op: model.OpSwapFrontBack, SwapTeam: true},
					}},
				},
			},
		},
	}
}
