package turkmorph

// NewTurkishCatalog builds the Turkish morphotactic table: nominal
// inflection (number, possession, case), a handful of derivations, the
// nominal copula and the common verb tenses.
func NewTurkishCatalog() *Catalog {
	c := newCatalog()

	// ---- templates ---------------------------------------------------------

	nounT := c.template("Noun_TEMPLATE", "Noun")
	adjT := c.template("Adj_TEMPLATE", "Adj")
	numT := c.template("Num_TEMPLATE", "Num")
	verbT := c.template("Verb_TEMPLATE", "Verb")
	persPronT := c.template("PersPron_TEMPLATE", "Pron")
	demonsPronT := c.template("DemonsPron_TEMPLATE", "Pron")
	nounCompRootT := c.template("NounCompRoot_TEMPLATE", "Noun")

	a3sgT := c.template("A3sg_TEMPLATE", "A3sg")
	a1sgT := c.template("A1sg_TEMPLATE", "A1sg")
	a2sgT := c.template("A2sg_TEMPLATE", "A2sg")
	pnonT := c.template("Pnon_TEMPLATE", "Pnon")
	nomT := c.template("Nom_TEMPLATE", "Nom")
	presT := c.template("Pres_TEMPLATE", "Pres")
	a3sgVerbT := c.template("A3sg_Verb_TEMPLATE", "A3sg")
	posT := c.template("Pos_TEMPLATE", "Pos")
	impT := c.template("Imp_TEMPLATE", "Imp", Terminal)

	noun2Noun := c.derivation("Noun2Noun", PosNoun)
	noun2Adj := c.derivation("Noun2Adj", PosAdjective)
	noun2VerbCop := c.derivation("Noun2VerbCopular", PosVerb)
	adj2Noun := c.derivation("Adj2Noun", PosNoun)

	// ---- nominal forms -----------------------------------------------------

	datYA := c.concrete("Dat_yA", "Dat", "+yA")
	locDA := c.concrete("Loc_dA", "Loc", ">dA")
	ablDAn := c.concrete("Abl_dAn", "Abl", ">dAn")
	genNIn := c.concrete("Gen_nIn", "Gen", "+nIn")
	genIm := c.concrete("Gen_Im", "Gen", "+Im") // benim
	accYI := c.concrete("Acc_yI", "Acc", "+yI")
	instYlA := c.concrete("Inst_ylA", "Inst", "+ylA")
	equCA := c.concrete("Equ_cA", "Equ", ">cA")

	datNA := c.concrete("Dat_nA", "Dat", "nA") // kalemine
	locNdA := c.concrete("Loc_ndA", "Loc", "ndA")
	ablNdAn := c.concrete("Abl_ndAn", "Abl", "ndAn")
	accNI := c.concrete("Acc_nI", "Acc", "nI")
	equNcA := c.concrete("Equ_ncA", "Equ", "ncA")

	p1sgIm := c.concrete("P1sg_Im", "P1sg", "Im")
	p2sgIn := c.concrete("P2sg_In", "P2sg", "In")
	p3sgSI := c.concrete("P3sg_sI", "P3sg", "+sI")
	p3sgYI := c.concrete("P3sg_yI", "P3sg", "+yI") // kalem-ler-i
	p1plImIz := c.concrete("P1pl_ImIz", "P1pl", "ImIz")
	p2plInIz := c.concrete("P2pl_InIz", "P2pl", "InIz")
	p3plLArI := c.concrete("P3pl_lArI", "P3pl", "lArI")
	p3plI := c.concrete("P3pl_I", "P3pl", "I") // kalem-ler-i

	a3plLAr := c.concrete("A3pl_lAr", "A3pl", "lAr")
	a3plCompLAr := c.concrete("A3pl_Comp_lAr", "A3pl", "lAr", NonTerminal)    // zeytinyağ-lar-ım
	a3plCompLArI := c.concrete("A3pl_Comp_lArI", "A3pl", "lArI", NonTerminal) // zeytinyağ-ları
	a3plNlAr := c.concrete("A3pl_nlAr", "A3pl", "nlAr")                     // bu-nlar

	dimCIk := c.concrete("Dim_cIk", "Dim", ">cI~k")
	nessLIk := c.concrete("Ness_lIk", "Ness", "lI~k")
	agtCI := c.concrete("Agt_cI", "Agt", ">cI")
	withLI := c.concrete("With_lI", "With", "lI")
	withoutSIz := c.concrete("Without_sIz", "Without", "sIz")
	relKi := c.concrete("Rel_ki", "Rel", "ki") // ev-de-ki

	// ---- copula and person agreement ---------------------------------------

	pastCopYdI := c.concrete("PastCop_ydI", "Past", "+y>dI")
	narrCopYmIs := c.concrete("NarrCop_ymIs", "Narr", "+ymIş")
	condCopYsA := c.concrete("CondCop_ysA", "Cond", "+ysA")
	copDIr := c.concrete("Cop_dIr", "Cop", ">dIr")

	a1sgYIm := c.concrete("A1sg_yIm", "A1sg", "+yIm")
	a2sgSIn := c.concrete("A2sg_sIn", "A2sg", "sIn")
	a1plYIz := c.concrete("A1pl_yIz", "A1pl", "+yIz")
	a2plSInIz := c.concrete("A2pl_sInIz", "A2pl", "sInIz")
	a3plVerbLAr := c.concrete("A3pl_Verb_lAr", "A3pl", "lAr")
	a1sgM := c.concrete("A1sg_m", "A1sg", "m")
	a2sgN := c.concrete("A2sg_n", "A2sg", "n")
	a1plK := c.concrete("A1pl_k", "A1pl", "k")
	a2plNIz := c.concrete("A2pl_nIz", "A2pl", "nIz")

	// ---- verbal forms ------------------------------------------------------

	negMA := c.concrete("Neg_mA", "Neg", "mA", NonTerminal)
	negM := c.concrete("Neg_m", "Neg", "m", NonTerminal) // gel-m-iyor
	progIyor := c.concrete("Prog_Iyor", "Prog", "Iyor")
	futYAcAk := c.concrete("Fut_yAcAk", "Fut", "+yAcA~k")
	pastDI := c.concrete("Past_dI", "Past", ">dI")
	narrMIs := c.concrete("Narr_mIs", "Narr", "mIş")
	aorIr := c.concrete("Aor_Ir", "Aor", "+Ir")
	aorAr := c.concrete("Aor_Ar", "Aor", "+Ar")
	aorZ := c.concrete("Aor_z", "Aor", "z") // gel-me-z
	infMAk := c.concrete("Inf_mAk", "Inf", "mA~k")

	// ---- roots -------------------------------------------------------------

	nounDefault := c.null("Noun_Default", nounT)
	properNounDefault := c.null("ProperNoun_Default", nounT)
	nounCompP3sg := c.null("Noun_Comp_P3sg", nounT)
	nounCompP3sgRoot := c.null("Noun_Comp_P3sg_Root", nounCompRootT)
	pnonComp := c.null("Pnon_Comp", pnonT)
	nomComp := c.null("Nom_Comp", nomT, Terminal)
	numDefault := c.null("Numeral_Default", numT)
	adjDefault := c.null("Adj_Default", adjT, Terminal)
	verbDefault := c.null("Verb_Default", verbT)
	verbDe := c.null("Verb_De", verbT)
	verbYe := c.null("Verb_Ye", verbT)
	verbDi := c.null("Verb_Di", verbT)
	verbYi := c.null("Verb_Yi", verbT)
	verbDeYeProg := c.null("Verb_De_Ye_Prog", verbT)
	persPronDefault := c.null("PersPron_Default", persPronT)
	persPronBen := c.null("PersPron_Ben", persPronT)
	persPronSen := c.null("PersPron_Sen", persPronT)
	persPronBan := c.null("PersPron_Ban", persPronT)
	persPronSan := c.null("PersPron_San", persPronT)
	demonsPronDefault := c.null("DemonsPron_Default", demonsPronT)
	for _, pos := range []PrimaryPos{PosAdverb, PosConjunction, PosInterjection,
		PosDeterminer, PosPostPositive, PosQuestion, PosDuplicator, PosPunctuation} {
		t := c.template(pos.String()+"_TEMPLATE", pos.String(), Terminal)
		c.null(pos.String()+"_Default", t)
	}

	// ---- sets --------------------------------------------------------------

	caseForms := NewFormSet(nomT, datYA, locDA, ablDAn, genNIn, accYI, instYlA, equCA)
	nCaseForms := NewFormSet(datNA, locNdA, ablNdAn, accNI, equNcA)
	possessives := NewFormSet(pnonT, p1sgIm, p2sgIn, p3sgSI, p1plImIz, p2plInIz, p3plLArI)
	personsN := NewFormSet(a1sgYIm, a2sgSIn, a3sgVerbT, a1plYIz, a2plSInIz, a3plVerbLAr)
	personsCop := NewFormSet(a1sgM, a2sgN, a3sgVerbT, a1plK, a2plNIz, a3plVerbLAr)
	copula := NewFormSet(noun2VerbCop, presT, pastCopYdI, narrCopYmIs, condCopYsA, copDIr).
		Union(personsN).Union(personsCop)
	derivations := NewFormSet(noun2Noun, noun2Adj, adj2Noun, dimCIk, nessLIk, agtCI, withLI, withoutSIz, relKi)
	nounTail := NewFormSet(a3sgT, a3plLAr, p3sgYI, p3plI).
		Union(possessives).Union(caseForms).Union(derivations).Union(copula)
	verbTail := NewFormSet(posT, negMA, negM, progIyor, futYAcAk, pastDI, narrMIs,
		aorIr, aorAr, aorZ, impT, infMAk, a3sgT, pnonT).
		Union(caseForms).Union(personsN).Union(personsCop)
	var all FormSet
	for _, f := range c.forms {
		all = all.Add(f)
	}

	// ---- morphotactics: templates ------------------------------------------

	nounT.connect(a3plLAr, a3sgT).indirectSet(nounTail)
	nounCompRootT.connect(a3plCompLAr, a3plCompLArI, a3sgT).
		connectIndirect(p1sgIm, p2sgIn, p1plImIz, p2plInIz)
	adjT.connect(adj2Noun, noun2VerbCop).indirectSet(nounTail)
	numT.connect(a3plLAr, a3sgT).indirectSet(nounTail)
	verbT.connect(posT, negMA, negM).indirectSet(verbTail)
	persPronT.connect(a1sgT, a2sgT, a3sgT).
		connectIndirect(pnonT, nomT, datYA, locDA, ablDAn, genIm, accYI, instYlA).
		indirectSet(copula)
	demonsPronT.connect(a3sgT, a3plNlAr).
		connectIndirect(pnonT, nomT, datNA, locNdA, ablNdAn, accNI, genNIn).
		indirectSet(copula)

	a3sgT.connectSet(possessives).indirectSet(all)
	a1sgT.connect(pnonT).indirectSet(all)
	a2sgT.connect(pnonT).indirectSet(all)
	pnonT.connectSet(caseForms.Union(nCaseForms)).connect(genIm).indirectSet(all)
	nomT.connect(noun2Noun, noun2Adj, noun2VerbCop).indirectSet(all)
	presT.connectSet(personsN).indirectSet(all)
	a3sgVerbT.connect(copDIr).indirectSet(all)
	posT.connect(progIyor, futYAcAk, pastDI, narrMIs, aorIr, aorAr, impT, infMAk).indirectSet(all)

	noun2Noun.connect(dimCIk, agtCI, nessLIk).indirectSet(all)
	noun2Adj.connect(withLI, withoutSIz).indirectSet(all)
	noun2VerbCop.connect(presT, pastCopYdI, narrCopYmIs, condCopYsA).indirectSet(all)
	adj2Noun.connect(a3plLAr, a3sgT).indirectSet(all)

	// ---- morphotactics: roots ----------------------------------------------

	nounDefault.connect(a3plLAr, a3sgT).indirectSet(nounTail)
	properNounDefault.copyConnections(nounDefault)
	numDefault.copyConnections(nounDefault)
	nounCompP3sg.connect(a3sgT).
		connectIndirect(pnonT, nomT, datNA, locNdA, ablNdAn, accNI, equNcA, genNIn, instYlA).
		indirectSet(copula)
	nounCompP3sgRoot.copyConnections(nounCompRootT)
	adjDefault.copyConnections(adjT)

	verbDefault.copyConnections(verbT)
	verbDe.connect(negM, negMA, posT).indirectSet(verbTail.Clone().Remove(aorIr, progIyor, futYAcAk))
	verbYe.copyConnections(verbDe)
	verbDi.connect(posT).connectIndirect(futYAcAk).indirectSet(personsN).connectIndirect(copDIr)
	verbYi.copyConnections(verbDi)
	verbDeYeProg.connect(posT).connectIndirect(progIyor, copDIr).indirectSet(personsN)

	persPronDefault.copyConnections(persPronT)
	persPronBen.connect(a1sgT).indirectSet(persPronT.indirect.Clone().Remove(datYA))
	persPronSen.connect(a2sgT).indirectSet(persPronT.indirect.Clone().Remove(datYA))
	persPronBan.connect(a1sgT).connectIndirect(pnonT, datYA) // bana
	persPronSan.connect(a2sgT).connectIndirect(pnonT, datYA) // sana
	demonsPronDefault.copyConnections(demonsPronT)

	// ---- morphotactics: concrete forms -------------------------------------

	a3plLAr.connect(pnonT, p1sgIm, p2sgIn, p3sgYI, p1plImIz, p2plInIz, p3plI).
		indirectSet(caseForms.Union(derivations).Union(copula))
	// A compound plural takes a possessive. Its only Pnon reading is the
	// bare lArI form.
	a3plCompLAr.connect(p1sgIm, p2sgIn, p3sgYI, p1plImIz, p2plInIz, p3plI)
	a3plCompLArI.connect(pnonComp)
	pnonComp.connect(nomComp)
	a3plNlAr.connect(pnonT).indirectSet(caseForms.Union(copula))

	for _, f := range []*SuffixForm{p1sgIm, p2sgIn, p1plImIz, p2plInIz, p3plLArI} {
		f.connectSet(caseForms).indirectSet(copula)
	}
	for _, f := range []*SuffixForm{p3sgSI, p3sgYI} {
		f.connect(nomT, datNA, locNdA, ablNdAn, accNI, equNcA, genNIn, instYlA).indirectSet(copula)
	}
	p3plI.connect(nomT, datNA, locNdA, ablNdAn, accNI, genNIn).indirectSet(copula)

	for _, f := range []*SuffixForm{locDA, locNdA, genNIn} {
		f.connect(noun2VerbCop, relKi).indirectSet(copula)
	}
	for _, f := range []*SuffixForm{ablDAn, ablNdAn, genIm} {
		f.connect(noun2VerbCop).indirectSet(copula)
	}

	relKi.connect(adj2Noun, noun2VerbCop).indirectSet(nounTail)
	for _, f := range []*SuffixForm{dimCIk, agtCI, nessLIk} {
		f.connect(a3plLAr, a3sgT).indirectSet(nounTail.Clone().Remove(f))
	}
	for _, f := range []*SuffixForm{withLI, withoutSIz} {
		f.connect(adj2Noun, noun2VerbCop).indirectSet(nounTail)
	}

	pastCopYdI.connectSet(personsCop)
	condCopYsA.connectSet(personsCop)
	narrCopYmIs.connectSet(personsN).connectIndirect(copDIr)
	for _, f := range []*SuffixForm{a1sgYIm, a2sgSIn, a1plYIz, a2plSInIz} {
		f.connect(copDIr)
	}

	negMA.connect(futYAcAk, pastDI, narrMIs, aorZ, impT, infMAk).indirectSet(verbTail)
	negM.connect(progIyor)
	for _, f := range []*SuffixForm{progIyor, futYAcAk, narrMIs, aorIr, aorAr, aorZ} {
		f.connectSet(personsN).connectIndirect(copDIr)
	}
	pastDI.connectSet(personsCop)
	infMAk.connect(a3sgT).connectIndirect(pnonT).indirectSet(caseForms) // gel-mek-te

	c.registerAll()

	c.special["ben_Pron_Pers"] = []SpecialStem{
		{"ben", Terminal, "PersPron_Ben"},
		{"ban", NonTerminal, "PersPron_Ban"},
	}
	c.special["sen_Pron_Pers"] = []SpecialStem{
		{"sen", Terminal, "PersPron_Sen"},
		{"san", NonTerminal, "PersPron_San"},
	}
	c.special["demek_Verb"] = []SpecialStem{
		{"de", Terminal, "Verb_De"},
		{"d", NonTerminal, "Verb_De_Ye_Prog"},
		{"di", NonTerminal, "Verb_Di"},
	}
	c.special["yemek_Verb"] = []SpecialStem{
		{"ye", Terminal, "Verb_Ye"},
		{"y", NonTerminal, "Verb_De_Ye_Prog"},
		{"yi", NonTerminal, "Verb_Yi"},
	}
	return c
}

// RootForm returns the form a stem of item enters the suffix graph with.
// A non-empty constraint yields a null form of the item's template
// restricted to it.
func (c *Catalog) RootForm(item *DictionaryItem, constraint FormSet) *SuffixForm {
	c.mu.Lock()
	defer c.mu.Unlock()
	if constraint.IsEmpty() {
		return c.defaultRoot(item)
	}
	tmpl := c.rootTemplate(item)
	n := c.generateNull(tmpl, constraint)
	c.register(n)
	return n
}

// rootTemplate returns the template whose connections a constrained root
// of item is cut from. The caller holds c.mu.
func (c *Catalog) rootTemplate(item *DictionaryItem) *SuffixForm {
	switch item.Pos {
	case PosVerb:
		return c.mustForm("Verb_TEMPLATE")
	case PosAdjective:
		return c.mustForm("Adj_TEMPLATE")
	case PosPronoun:
		if item.SecondaryPos == SecDemonstrative {
			return c.mustForm("DemonsPron_TEMPLATE")
		}
		return c.mustForm("PersPron_TEMPLATE")
	}
	if item.HasAttr(CompoundP3sgRoot) {
		return c.mustForm("NounCompRoot_TEMPLATE")
	}
	return c.mustForm("Noun_TEMPLATE")
}

func (c *Catalog) defaultRoot(item *DictionaryItem) *SuffixForm {
	switch item.Pos {
	case PosNoun:
		switch {
		case item.HasAttr(CompoundP3sg):
			return c.mustForm("Noun_Comp_P3sg")
		case item.HasAttr(CompoundP3sgRoot):
			return c.mustForm("Noun_Comp_P3sg_Root")
		case item.SecondaryPos == SecProperNoun:
			return c.mustForm("ProperNoun_Default")
		}
		return c.mustForm("Noun_Default")
	case PosAdjective:
		return c.mustForm("Adj_Default")
	case PosVerb:
		return c.mustForm("Verb_Default")
	case PosNumeral:
		return c.mustForm("Numeral_Default")
	case PosPronoun:
		if item.SecondaryPos == SecDemonstrative {
			return c.mustForm("DemonsPron_Default")
		}
		return c.mustForm("PersPron_Default")
	case PosUnknown:
		return c.mustForm("Noun_Default")
	}
	return c.mustForm(item.Pos.String() + "_Default")
}

// SuccessorConstraints returns the suffix sets allowed after the original
// and the modified stem of item. Verbs are constrained by their aorist and
// vowel drop attributes; any item may narrow or widen its successors with
// ExclusiveSuffixData.
func (c *Catalog) SuccessorConstraints(item *DictionaryItem) (original, modified FormSet) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if item.Pos == PosVerb {
		original, modified = c.verbConstraints(item)
	}
	if item.Exclusive.IsEmpty() {
		return original, modified
	}
	base := c.rootTemplate(item).AllConnections()
	if original.IsEmpty() {
		original = base
	}
	if modified.IsEmpty() {
		modified = base
	}
	return c.applyExclusive(item.Exclusive, original), c.applyExclusive(item.Exclusive, modified)
}

func (c *Catalog) verbConstraints(item *DictionaryItem) (original, modified FormSet) {
	all := c.mustForm("Verb_TEMPLATE").AllConnections()
	original, modified = all.Clone(), all.Clone()
	aorIr, aorAr := c.mustForm("Aor_Ir"), c.mustForm("Aor_Ar")
	pvd := item.HasAttr(ProgressiveVowelDrop)
	if item.HasAttr(AoristA) {
		original = original.Add(aorAr).Remove(aorIr)
		if !pvd {
			modified = modified.Add(aorAr).Remove(aorIr)
		}
	}
	if item.HasAttr(AoristI) {
		original = original.Add(aorIr).Remove(aorAr)
		if !pvd {
			modified = modified.Add(aorIr).Remove(aorAr)
		}
	}
	if pvd {
		prog := c.mustForm("Prog_Iyor")
		original = original.Remove(prog)
		modified = NewFormSet(c.mustForm("Pos_TEMPLATE"), prog)
	}
	return original, modified
}
