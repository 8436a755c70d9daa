package betting

// Flat bets the base unit every hand.
type Flat struct {
	opts Options
}

func (f *Flat) Name() string { return "flat" }

func (f *Flat) NextBet() float64 { return f.opts.BaseBet }

func (f *Flat) Record(Outcome) {}

func (f *Flat) Reset() {}

// Martingale doubles the bet after a loss and returns to the base unit
// after a win. Pushes leave the bet unchanged. MaxBet, when set, caps the
// doubling.
type Martingale struct {
	opts Options
	bet  float64
}

func (m *Martingale) Name() string { return "martingale" }

func (m *Martingale) NextBet() float64 { return m.bet }

func (m *Martingale) Record(outcome Outcome) {
	switch outcome {
	case Win:
		m.bet = m.opts.BaseBet
	case Loss:
		m.bet *= 2
		if m.opts.MaxBet > 0 && m.bet > m.opts.MaxBet {
			m.bet = m.opts.MaxBet
		}
	}
}

func (m *Martingale) Reset() { m.bet = m.opts.BaseBet }

// DAlembert adds one base unit after a loss and removes one after a win,
// never dropping below the base unit.
type DAlembert struct {
	opts Options
	bet  float64
}

func (d *DAlembert) Name() string { return "dalembert" }

func (d *DAlembert) NextBet() float64 { return d.bet }

func (d *DAlembert) Record(outcome Outcome) {
	switch outcome {
	case Win:
		d.bet -= d.opts.BaseBet
		if d.bet < d.opts.BaseBet {
			d.bet = d.opts.BaseBet
		}
	case Loss:
		d.bet += d.opts.BaseBet
		if d.opts.MaxBet > 0 && d.bet > d.opts.MaxBet {
			d.bet = d.opts.MaxBet
		}
	}
}

func (d *DAlembert) Reset() { d.bet = d.opts.BaseBet }

// Paroli doubles after a win for up to three consecutive wins, then takes
// the profit and returns to the base unit. Any loss also returns to the
// base unit.
type Paroli struct {
	opts   Options
	bet    float64
	streak int
}

func (p *Paroli) Name() string { return "paroli" }

func (p *Paroli) NextBet() float64 { return p.bet }

func (p *Paroli) Record(outcome Outcome) {
	switch outcome {
	case Win:
		p.streak++
		if p.streak >= 3 {
			p.streak = 0
			p.bet = p.opts.BaseBet
			return
		}
		p.bet *= 2
		if p.opts.MaxBet > 0 && p.bet > p.opts.MaxBet {
			p.bet = p.opts.MaxBet
		}
	case Loss:
		p.streak = 0
		p.bet = p.opts.BaseBet
	}
}

func (p *Paroli) Reset() {
	p.bet = p.opts.BaseBet
	p.streak = 0
}
