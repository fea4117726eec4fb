// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package jobs

// Serial is a monotonically increasing job identifier, assigned at
// spawn time. The counter is owned by the scheduler, not the process:
// two schedulers number their jobs independently.
type Serial = uint32

// nextSerial returns the next monotonically increasing serial.
func (s *Scheduler) nextSerial() Serial {
	return s.serial.Add(1)
}
